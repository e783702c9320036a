package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/repository"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new TrackIt workspace",
		Long: `Initialize a new TrackIt workspace in the current directory or specified path.
This creates a .trackit directory holding the object store, references, and locks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}

			workspace, err := trackpath.NewWorkspacePath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			repo := repository.NewRepository(workspace)
			if err := repo.Init(); err != nil {
				return fmt.Errorf("failed to initialize workspace: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Initialized empty TrackIt workspace in",
				filepath.Join(absPath, trackpath.TrackDir)))
			return nil
		},
	}
}
