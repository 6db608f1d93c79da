package cfg

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidpick/internal/domain/consts"
	"vidpick/internal/domain/keys"
)

// initProgramFlags initializes user flag settings related to the core
// program, e.g. logging level and state locations.
func initProgramFlags(rootCmd *cobra.Command) error {
	pf := rootCmd.PersistentFlags()

	// Debug level
	pf.Int(keys.DebugLevel, 0, "Debugging level (0 - 3)")
	if err := viper.BindPFlag(keys.DebugLevel, pf.Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	// Console log format
	pf.Bool(keys.LogPretty, true, "Human readable console logging")
	if err := viper.BindPFlag(keys.LogPretty, pf.Lookup(keys.LogPretty)); err != nil {
		return err
	}

	// Config file
	pf.String(keys.ConfigFile, "", "Config file to load (default is config.toml in the program directory)")
	if err := viper.BindPFlag(keys.ConfigFile, pf.Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	// State location override
	pf.String(keys.StateDir, "", "Directory for the session snapshot and caches (default ~/.vidpick)")
	if err := viper.BindPFlag(keys.StateDir, pf.Lookup(keys.StateDir)); err != nil {
		return err
	}

	// Recently played cap
	pf.Int(keys.MaxRecent, consts.DefaultMaxRecent, "How many recently played videos to remember")
	if err := viper.BindPFlag(keys.MaxRecent, pf.Lookup(keys.MaxRecent)); err != nil {
		return err
	}

	// Video extensions
	pf.StringSlice(keys.Extensions, consts.DefaultVideoExts, "File extensions that count as videos")
	if err := viper.BindPFlag(keys.Extensions, pf.Lookup(keys.Extensions)); err != nil {
		return err
	}

	// Session saving
	pf.Bool(keys.Persist, true, "Save session changes to disk")
	if err := viper.BindPFlag(keys.Persist, pf.Lookup(keys.Persist)); err != nil {
		return err
	}

	// Player launch timeout
	pf.Duration(keys.PlayTimeout, consts.PlayerLaunchTimeout, "How long to wait for the player launcher")
	if err := viper.BindPFlag(keys.PlayTimeout, pf.Lookup(keys.PlayTimeout)); err != nil {
		return err
	}

	// Folder to scan before the interactive session starts
	rootCmd.Flags().StringP(keys.Folder, "f", "", "Folder to scan before the interactive session starts")
	if err := viper.BindPFlag(keys.Folder, rootCmd.Flags().Lookup(keys.Folder)); err != nil {
		return err
	}

	return nil
}
