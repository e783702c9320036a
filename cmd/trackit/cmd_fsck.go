package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/refs"
	"github.com/utkarsh5026/TrackIt/pkg/repository"
)

func newFsckCmd() *cobra.Command {
	var clearLocks bool

	cmd := &cobra.Command{
		Use:   "fsck",
		Short: "Check workspace integrity",
		Long: `Fsck re-reads every stored object and verifies its digest, reports
references that point at missing objects, and lists advisory locks
left behind by interrupted processes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			problems := 0

			corrupted, err := repo.Objects().Verify()
			if err != nil {
				return fmt.Errorf("object verification failed: %w", err)
			}
			for _, digest := range corrupted {
				problems++
				fmt.Println(ui.ErrorMessage("corrupted object " + digest.String()))
			}

			dangling, err := findDanglingRefs(repo)
			if err != nil {
				return err
			}
			for _, name := range dangling {
				problems++
				fmt.Println(ui.ErrorMessage("dangling ref " + name))
			}

			held, err := repo.Locks().ListHeld()
			if err != nil {
				return fmt.Errorf("failed to list locks: %w", err)
			}
			for _, resource := range held {
				if clearLocks {
					if _, err := repo.Locks().ClearStale(resource); err != nil {
						return fmt.Errorf("failed to clear lock %s: %w", resource, err)
					}
					fmt.Println(ui.SuccessMessage("Cleared stale lock", resource))
					continue
				}
				problems++
				fmt.Println(ui.Yellow("held lock: " + resource + " (use --clear-locks if no process owns it)"))
			}

			if problems == 0 {
				fmt.Println(ui.SuccessMessage("Workspace is healthy"))
				return nil
			}
			return fmt.Errorf("fsck found %d problems", problems)
		},
	}

	cmd.Flags().BoolVar(&clearLocks, "clear-locks", false, "Remove leftover advisory lock files")
	return cmd
}

// findDanglingRefs reports references whose target object is absent
// from the store
func findDanglingRefs(repo *repository.Repository) ([]string, error) {
	names, err := repo.Refs().List("")
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}

	var dangling []string
	for _, name := range names {
		digest, exists, err := repo.Refs().Get(name)
		if err != nil {
			if refs.IsCorrupt(err) {
				dangling = append(dangling, name.String()+" (corrupt ref file)")
				continue
			}
			return nil, err
		}
		if !exists {
			continue
		}

		has, err := repo.Objects().Has(digest)
		if err != nil {
			return nil, err
		}
		if !has {
			dangling = append(dangling, name.String())
		}
	}
	return dangling, nil
}
