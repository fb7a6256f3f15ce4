package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"poseloop/internal/domain"
	"poseloop/internal/engine"
	"poseloop/internal/repository"
)

// consoleNotifier prints session events to the terminal and signals
// completion through done.
type consoleNotifier struct {
	done chan struct{}
}

func (n *consoleNotifier) PoseChanged(pose domain.Pose, position, total int) {
	fmt.Printf("\n[%d/%d] pose %s", position, total, pose.ID)
	if len(pose.Keywords) > 0 {
		fmt.Printf(" (%v)", pose.Keywords)
	}
	fmt.Println()
}

func (n *consoleNotifier) CountdownNearZero(remainingSeconds int) {
	fmt.Printf("\a%d seconds left\n", remainingSeconds)
}

func (n *consoleNotifier) SessionCompleted() {
	close(n.done)
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a practice session in the terminal",
	Long: `Run a timed practice session against the pose library without
the web UI: the session advances on its own, rings the terminal bell
near the end of each pose, and exits when the session completes.

Examples:
  poseloop run --pose-length 60 --count 10
  poseloop run --terms standing,dynamic --minutes 20 --pose-length 120`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		poseLength, _ := cmd.Flags().GetInt("pose-length")
		count, _ := cmd.Flags().GetInt("count")
		minutes, _ := cmd.Flags().GetInt("minutes")
		terms, _ := cmd.Flags().GetStringSlice("terms")
		noShuffle, _ := cmd.Flags().GetBool("no-shuffle")

		cfg := engine.Config{
			PoseLengthSeconds: poseLength,
			SessionType:       engine.SessionByCount,
			PoseCount:         count,
			MatchTerms:        terms,
			Randomize:         !noShuffle,
		}
		if minutes > 0 {
			cfg.SessionType = engine.SessionByDuration
			cfg.SessionDurationMinutes = minutes
		}
		cfg = cfg.Normalized()

		poses, err := repository.NewPoseRepository(db).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load poses: %w", err)
		}
		if len(poses) == 0 {
			return fmt.Errorf("the pose library is empty; ingest some images first")
		}
		pool := make([]domain.Pose, len(poses))
		for i, p := range poses {
			pool[i] = *p
		}

		notifier := &consoleNotifier{done: make(chan struct{})}
		ctrl := engine.NewController(cfg, pool, engine.WithNotifier(notifier))
		defer ctrl.Close()

		if ctrl.Fallback() {
			log.Printf("No pose matched %v; using the whole library", terms)
		}

		// The first pose never fires PoseChanged; announce it by hand.
		state := ctrl.Snapshot()
		if state.CurrentPose != nil {
			notifier.PoseChanged(*state.CurrentPose, state.Position, state.Total)
		}
		fmt.Printf("%d poses, %d seconds each\n", state.Total, cfg.PoseLengthSeconds)
		ctrl.Play()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		defer signal.Stop(interrupt)

		select {
		case <-notifier.done:
			fmt.Println("\nSession complete.")
			return nil
		case <-interrupt:
			fmt.Println("\nInterrupted.")
			return nil
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("pose-length", 60, "Seconds per pose")
	runCmd.Flags().Int("count", 10, "Number of poses in the session")
	runCmd.Flags().Int("minutes", 0, "Total session length in minutes (replaces --count)")
	runCmd.Flags().StringSlice("terms", nil, "Keywords to match poses against")
	runCmd.Flags().Bool("no-shuffle", false, "Keep poses in ranked order instead of shuffling")
}
