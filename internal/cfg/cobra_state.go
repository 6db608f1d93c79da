package cfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidpick/internal/file"
	"vidpick/internal/models"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
)

// stateCmd groups snapshot management commands.
func stateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Saved session management",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	cmd.AddCommand(stateShowCmd(), stateClearCmd())
	return cmd
}

// stateShowCmd summarizes the saved snapshot without touching it.
func stateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved session snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			statePath, _, _ := resolveStatePaths()

			var snap models.Snapshot
			if err := file.ReadJSON(statePath, &snap); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					fmt.Println("No saved session.")
					return nil
				}
				return err
			}

			fmt.Printf("State file: %s\n", statePath)
			fmt.Printf("Folder:     %s\n", snap.CurrentFolder)
			fmt.Printf("Videos:     %d\n", len(snap.VideoFiles))
			fmt.Printf("Played:     %d\n", len(snap.PlayedVideos))
			fmt.Printf("Recent:     %d\n", len(snap.RecentVideos))
			return nil
		},
	}
}

// stateClearCmd removes the saved snapshot.
func stateClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved session snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			statePath, _, _ := resolveStatePaths()

			sess := session.NewStore(session.Config{StatePath: statePath})
			sess.ClearSaved()

			logging.S(0, "Saved session cleared")
			return nil
		},
	}
}
