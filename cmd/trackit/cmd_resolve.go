package main

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/conflict"
	"github.com/utkarsh5026/TrackIt/pkg/syncer"
)

func newResolveCmd() *cobra.Command {
	var remoteName, strategy, prefer string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve sync conflicts with a remote",
		Long: `Resolve inspects the conflicts between the workspace and a remote
and settles them, either interactively or with a batch strategy.
Resolved snapshots are written locally; push afterwards to publish
them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			cfg, manager, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			remote, err := findRemote(repo, remoteName)
			if err != nil {
				return err
			}

			engine, err := buildEngine(repo, cfg, manager, remote)
			if err != nil {
				return err
			}

			opts := syncOptionsFromConfig(cfg)
			opts.DryRun = true
			result, err := engine.Sync(cmd.Context(), remote.ID, opts)
			if err != nil {
				return err
			}
			if len(result.Conflicts) == 0 {
				fmt.Println(ui.SuccessMessage("No conflicts with", remote.Name))
				return nil
			}

			var resolved []string
			if strategy != "" {
				batch, err := parseStrategy(strategy, prefer)
				if err != nil {
					return err
				}
				resolved, err = engine.ResolveConflicts(result.Conflicts, batch)
				if err != nil {
					return err
				}
			} else {
				resolved, err = resolveInteractively(engine, result.Conflicts)
				if err != nil {
					return err
				}
			}

			fmt.Println(ui.SuccessMessage(fmt.Sprintf("Resolved %d of %d conflicts", len(resolved), len(result.Conflicts))))
			if len(resolved) > 0 {
				fmt.Println(ui.Gray("run 'trackit push' to publish the resolutions"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&remoteName, "remote", "r", "", "Remote to reconcile against")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Batch strategy: stop, skip, or auto")
	cmd.Flags().StringVar(&prefer, "prefer", "", "Snapshot the auto strategy prefers: local or remote")
	return cmd
}

func parseStrategy(strategy, prefer string) (conflict.BatchConflictStrategy, error) {
	switch strategy {
	case "stop":
		return conflict.StopStrategy(), nil
	case "skip":
		return conflict.SkipStrategy(), nil
	case "auto":
		switch prefer {
		case "local":
			return conflict.AutoStrategy(conflict.LocalResolution()), nil
		case "remote":
			return conflict.AutoStrategy(conflict.RemoteResolution()), nil
		case "":
			return conflict.BatchConflictStrategy{}, fmt.Errorf("auto strategy needs --prefer local or --prefer remote")
		default:
			return conflict.BatchConflictStrategy{}, fmt.Errorf("unknown preference: %s", prefer)
		}
	default:
		return conflict.BatchConflictStrategy{}, fmt.Errorf("unknown strategy: %s", strategy)
	}
}

// resolveInteractively walks the conflicts one by one and applies the
// chosen snapshot immediately
func resolveInteractively(engine *syncer.Engine, conflicts []*conflict.Conflict) ([]string, error) {
	var resolved []string
	for _, c := range conflicts {
		fmt.Println(ui.FormatConflict(c))
		fmt.Printf("  local:  %s (modified %s)\n", c.Local.Title, c.Local.UpdatedAt.Local())
		fmt.Printf("  remote: %s (modified %s)\n", c.Remote.Title, c.Remote.UpdatedAt.Local())

		prompt := promptui.Select{
			Label: fmt.Sprintf("Resolve %s conflict on %s", c.Type, shortRef(c.EntityID)),
			Items: []string{"accept local", "accept remote", "skip"},
		}
		choice, _, err := prompt.Run()
		if err != nil {
			return resolved, fmt.Errorf("prompt aborted: %w", err)
		}

		var resolution conflict.ConflictResolution
		switch choice {
		case 0:
			resolution = conflict.LocalResolution()
		case 1:
			resolution = conflict.RemoteResolution()
		default:
			continue
		}

		ids, err := engine.ResolveConflicts([]*conflict.Conflict{c}, conflict.AutoStrategy(resolution))
		if err != nil {
			return resolved, err
		}
		resolved = append(resolved, ids...)
	}
	return resolved, nil
}
