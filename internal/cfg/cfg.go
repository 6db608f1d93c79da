// Package cfg provides configuration and command-line setup for vidpick.
package cfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidpick/internal/domain/consts"
	"vidpick/internal/domain/keys"
	"vidpick/internal/domain/paths"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

var rootCmd = &cobra.Command{
	Use:   "vidpick",
	Short: "vidpick plays random videos from a folder without repeats.",
	Long: `vidpick scans a folder for video files and picks them in random order,
never repeating one until every video has been played. Progress survives
restarts through a saved session snapshot.

Run without a subcommand for an interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return logging.Setup(
			viper.GetInt(keys.DebugLevel),
			viper.GetBool(keys.LogPretty),
			paths.LogFilePath,
		)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := buildRuntime()
		defer rt.close()

		go rt.pv.Sweep()

		restored := rt.sess.Load()
		if folder := viper.GetString(keys.Folder); folder != "" {
			// Rescanning the restored folder keeps its progress, any other
			// folder starts fresh.
			keep := restored && validation.CanonicalAbs(folder) == rt.sess.Folder()
			if _, err := rt.app.Scan(cmd.Context(), folder, session.ScanOptions{KeepSession: keep}); err != nil {
				return err
			}
		} else if !restored {
			fmt.Println("No saved session. Scan a folder with 'o <folder>' to get started.")
		}

		return rt.app.Interactive(cmd.Context(), os.Stdin, os.Stdout)
	},
}

// InitCommands initializes all commands and their flags.
func InitCommands() error {
	viper.SetEnvPrefix(consts.AppName)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "max-recent" reads VIDPICK_MAX_RECENT

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	rootCmd.AddCommand(
		scanCmd(),
		pickCmd(),
		recentCmd(),
		progressCmd(),
		resetCmd(),
		stateCmd(),
		watchCmd(),
	)
	return nil
}

// Execute runs the root command with ctx flowing into every handler.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
