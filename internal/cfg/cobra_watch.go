package cfg

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidpick/internal/domain/keys"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
	"vidpick/internal/watch"
)

// watchCmd keeps the session in sync with a folder that changes on disk.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [folder]",
		Short: "Rescan automatically when the folder changes",
		Long: `Watch scans the folder and then keeps the session up to date as videos
appear or disappear, preserving played history across rescans. With no
argument the saved session's folder is watched. Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()
			ctx := cmd.Context()

			restored := rt.sess.Load()

			var folder string
			switch {
			case len(args) == 1:
				folder = args[0]
			case restored:
				folder = rt.sess.Folder()
			default:
				return errors.New("no folder given and no saved session")
			}

			// Rescanning the restored folder keeps its progress.
			keep := restored && validation.CanonicalAbs(folder) == rt.sess.Folder()
			n, err := rt.app.Scan(ctx, folder, session.ScanOptions{KeepSession: keep})
			if err != nil {
				return err
			}
			fmt.Printf("Found %d videos in %s\n", n, folder)

			root := rt.sess.Folder()
			w, err := watch.New(root, viper.GetStringSlice(keys.Extensions), func() {
				if _, err := rt.app.Scan(ctx, root, session.ScanOptions{KeepSession: true}); err != nil {
					logging.E("Rescan failed: %v", err)
				}
			})
			if err != nil {
				return err
			}
			defer w.Close()

			fmt.Printf("Watching %s, press Ctrl-C to stop.\n", root)
			<-ctx.Done()
			fmt.Println()
			return nil
		},
	}
}
