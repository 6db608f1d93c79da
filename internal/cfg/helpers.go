package cfg

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"vidpick/internal/app"
	"vidpick/internal/database"
	"vidpick/internal/domain/consts"
	"vidpick/internal/domain/keys"
	"vidpick/internal/domain/paths"
	"vidpick/internal/models"
	"vidpick/internal/player"
	"vidpick/internal/preview"
	"vidpick/internal/repo"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
)

// runtime bundles the services a command builds once flags are resolved.
type runtime struct {
	sess *session.Store
	app  *app.App
	pv   *preview.Service
	db   *database.Database
}

// buildRuntime constructs the session, cache, player, and app from the
// effective settings. A broken cache database degrades to probing without
// one rather than failing the command.
func buildRuntime() *runtime {
	statePath, dbPath, thumbsDir := resolveStatePaths()

	sess := session.NewStore(session.Config{
		StatePath:  statePath,
		MaxRecent:  viper.GetInt(keys.MaxRecent),
		Extensions: viper.GetStringSlice(keys.Extensions),
	})

	var store *repo.MediaInfoStore
	db, err := database.InitDB(dbPath)
	if err != nil {
		logging.W("Media info cache unavailable: %v", err)
		db = nil
	} else {
		store = repo.GetMediaInfoStore(db.DB)
	}
	pv := preview.New(thumbsDir, store)

	pl := player.New()
	if t := viper.GetDuration(keys.PlayTimeout); t > 0 {
		pl.Timeout = t
	}

	return &runtime{
		sess: sess,
		app:  app.New(sess, pl, pv, viper.GetBool(keys.Persist)),
		pv:   pv,
		db:   db,
	}
}

func (r *runtime) close() {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			logging.D(1, "closing cache database: %v", err)
		}
	}
}

// resolveStatePaths applies the --state-dir override to the default
// program file locations.
func resolveStatePaths() (statePath, dbPath, thumbsDir string) {
	if dir := viper.GetString(keys.StateDir); dir != "" {
		return filepath.Join(dir, consts.StateFilename),
			filepath.Join(dir, consts.CacheDBFilename),
			filepath.Join(dir, consts.ThumbsDirName)
	}
	return paths.StateFilePath, paths.DBFilePath, paths.ThumbsDir
}

// printInfo writes one video's media details to stdout.
func printInfo(info *models.MediaInfo) {
	fmt.Printf("  Size:       %s\n", preview.FormatFileSize(info.Size))
	fmt.Printf("  Duration:   %s\n", preview.FormatDuration(info.Duration))
	fmt.Printf("  Resolution: %s\n", preview.FormatResolution(info.Width, info.Height))
	if info.VideoCodec != "" {
		fmt.Printf("  Codec:      %s\n", info.VideoCodec)
	}
}
