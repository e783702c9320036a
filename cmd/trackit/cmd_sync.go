package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/syncer"
)

// syncFlags are shared by sync, pull, and push
type syncFlags struct {
	remote  string
	project string
	dryRun  bool
	force   bool
	auto    bool
}

func (f *syncFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.remote, "remote", "r", "", "Remote to sync with")
	cmd.Flags().StringVar(&f.project, "project", "", "Restrict to one project id")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report what would transfer without mutating anything")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Keep going past the batch failure budget")
	cmd.Flags().BoolVar(&f.auto, "auto-resolve", false, "Resolve metadata conflicts in favor of the newer snapshot")
}

type syncRunner func(engine *syncer.Engine, cmd *cobra.Command, remoteID string, opts syncer.SyncOptions) (*syncer.SyncResult, error)

func newSyncCmd() *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize with a remote in both directions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags, "Syncing", func(engine *syncer.Engine, cmd *cobra.Command, remoteID string, opts syncer.SyncOptions) (*syncer.SyncResult, error) {
				return engine.Sync(cmd.Context(), remoteID, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newPullCmd() *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch remote changes into the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags, "Pulling", func(engine *syncer.Engine, cmd *cobra.Command, remoteID string, opts syncer.SyncOptions) (*syncer.SyncResult, error) {
				return engine.Pull(cmd.Context(), remoteID, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newPushCmd() *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Publish local changes to a remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags, "Pushing", func(engine *syncer.Engine, cmd *cobra.Command, remoteID string, opts syncer.SyncOptions) (*syncer.SyncResult, error) {
				return engine.Push(cmd.Context(), remoteID, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func runSync(cmd *cobra.Command, flags *syncFlags, verb string, run syncRunner) error {
	repo, err := findRepository()
	if err != nil {
		return err
	}

	cfg, manager, err := loadConfig(cmd.Context(), repo)
	if err != nil {
		return err
	}

	remote, err := findRemote(repo, flags.remote)
	if err != nil {
		return err
	}

	engine, err := buildEngine(repo, cfg, manager, remote)
	if err != nil {
		return err
	}

	opts := syncOptionsFromConfig(cfg)
	opts.ProjectID = flags.project
	opts.DryRun = flags.dryRun
	opts.Force = flags.force
	if flags.auto {
		opts.AutoResolve = true
	}

	bar := newSyncSpinner(fmt.Sprintf("%s with %s", verb, remote.Name))
	type outcome struct {
		result *syncer.SyncResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := run(engine, cmd, remote.ID, opts)
		done <- outcome{result, err}
	}()

	var result *syncer.SyncResult
	for {
		select {
		case o := <-done:
			bar.Finish()
			fmt.Println()
			result, err = o.result, o.err
		case <-time.After(100 * time.Millisecond):
			bar.Add(1)
			continue
		}
		break
	}

	if result != nil {
		printSyncResult(result)
	}
	return err
}

func newSyncSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func printSyncResult(result *syncer.SyncResult) {
	if result.DryRun {
		fmt.Println(ui.Yellow("dry run, nothing was changed"))
	}

	stats := result.Stats
	fmt.Printf("%s  pulled %d, pushed %d, %s transferred in %s\n",
		ui.IconRemote, stats.Pulled, stats.Pushed,
		formatBytes(stats.BytesTransferred), stats.Duration().Round(time.Millisecond))

	if stats.ConflictsDetected > 0 {
		fmt.Println(ui.ConflictStyle.Render(fmt.Sprintf("%s %d conflicts detected, %d resolved",
			ui.IconConflict, stats.ConflictsDetected, stats.ConflictsResolved)))
		for _, c := range result.Conflicts {
			fmt.Println(ui.FormatConflict(c))
		}
		if stats.ConflictsResolved < stats.ConflictsDetected {
			fmt.Println(ui.Gray("run 'trackit resolve' to settle the remaining conflicts"))
		}
	}

	for _, failure := range result.Failures {
		fmt.Println(ui.ErrorMessage(fmt.Sprintf("%s %s: %v", failure.Kind, shortRef(failure.ID), failure.Err)))
	}

	switch result.Phase {
	case syncer.PhaseCompleted:
		fmt.Println(ui.SuccessMessage("Sync completed"))
	case syncer.PhaseFailed:
		fmt.Println(ui.ErrorMessage("Sync failed"))
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
