package cfg

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidpick/internal/app"
	"vidpick/internal/domain/keys"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
)

// scanCmd builds or refreshes the picking session from a folder walk.
func scanCmd() *cobra.Command {
	var (
		keep bool
		flat bool
	)

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Scan a folder for videos",
		Long:  "Scan walks the folder for video files and starts (or refreshes) the picking session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()

			if keep {
				// Keeping history only means something against the saved
				// session.
				rt.sess.Load()
			}

			n, err := rt.app.Scan(cmd.Context(), args[0], session.ScanOptions{
				KeepSession: keep,
				Flat:        flat,
				Progress: func(found int) {
					fmt.Printf("\rScanning... %d videos", found)
				},
			})
			if err != nil {
				fmt.Println()
				return err
			}

			fmt.Printf("\rFound %d videos in %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, keys.KeepFlag, false, "Keep played history from the saved session")
	cmd.Flags().BoolVar(&flat, keys.FlatFlag, false, "Only scan the folder's top level")
	return cmd
}

// pickCmd plays one random unplayed video from the saved session.
func pickCmd() *cobra.Command {
	var (
		skip   bool
		noPlay bool
		info   bool
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a random unplayed video and play it",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()

			if !rt.sess.Load() {
				return errors.New("no saved session, run 'vidpick scan <folder>' first")
			}

			res, err := rt.app.PickAndPlay(cmd.Context(), app.PickOptions{
				Skip:   skip,
				NoPlay: noPlay,
				Info:   info,
			})
			if err != nil {
				return err
			}

			verb := "Now playing"
			if res.Skipped {
				verb = "Skipped"
			}
			fmt.Printf("%s: %s (%d of %d played)\n",
				verb, res.Path, res.Progress.Played, res.Progress.Total)
			if res.Info != nil {
				printInfo(res.Info)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, keys.SkipFlag, false, "Mark the pick skipped instead of playing it")
	cmd.Flags().BoolVar(&noPlay, keys.NoPlay, false, "Record the pick without launching a player")
	cmd.Flags().BoolVar(&info, keys.InfoFlag, false, "Show media details for the pick")
	return cmd
}

// recentCmd lists recently played videos, optionally replaying one.
func recentCmd() *cobra.Command {
	var (
		limit    int
		withInfo bool
		playIdx  int
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently played videos",
		Long:  "Recent lists recently played videos, newest first. --play N replays an entry without advancing the rotation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()

			if !rt.sess.Load() {
				fmt.Println("Nothing played yet.")
				return nil
			}

			recent := rt.sess.Recent(limit)
			if len(recent) == 0 {
				fmt.Println("Nothing played yet.")
				return nil
			}

			if playIdx > 0 {
				if playIdx > len(recent) {
					return fmt.Errorf("recent entry %d does not exist, only %d listed", playIdx, len(recent))
				}
				return rt.app.Replay(cmd.Context(), recent[playIdx-1])
			}

			for n, p := range recent {
				fmt.Printf("%2d. %s\n", n+1, p)
				if withInfo {
					info := rt.pv.Probe(cmd.Context(), p)
					printInfo(&info)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, keys.LimitFlag, "l", 0, "Max entries to list (0 lists everything remembered)")
	cmd.Flags().BoolVar(&withInfo, keys.InfoFlag, false, "Include media details per entry")
	cmd.Flags().IntVar(&playIdx, keys.PlayFlag, 0, "Replay entry N without advancing the rotation")
	return cmd
}

// progressCmd reports how far the rotation has come.
func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the played count against the total",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()

			rt.sess.Load()
			prog := rt.sess.Progress()
			if prog.Total == 0 {
				fmt.Println("no data")
				return nil
			}

			fmt.Printf("Played %d of %d (%.0f%%)\n", prog.Played, prog.Total,
				float64(prog.Played)/float64(prog.Total)*100)
			return nil
		},
	}
}

// resetCmd starts the rotation over while keeping the scanned video list.
func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Put every video back into the rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := buildRuntime()
			defer rt.close()

			if !rt.sess.Load() {
				return errors.New("no saved session to reset")
			}

			prog := rt.app.Reset()
			logging.S(0, "Rotation reset, %d videos back in the pool", prog.Total)
			return nil
		},
	}
}
