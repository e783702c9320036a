package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/model"
	"gopkg.in/yaml.v3"
)

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage sync remotes",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newRemoteAddCmd())
	cmd.AddCommand(newRemoteListCmd())
	cmd.AddCommand(newRemoteRemoveCmd())
	cmd.AddCommand(newRemoteExportCmd())
	return cmd
}

func newRemoteAddCmd() *cobra.Command {
	var projects []string

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a new remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			existing, err := repo.Remotes()
			if err != nil {
				return err
			}
			for _, r := range existing {
				if r.Name == args[0] {
					return fmt.Errorf("remote %q already exists", args[0])
				}
			}

			remote := model.NewRemote(args[0], args[1])
			remote.ProjectIDs = projects
			if _, err := repo.Create(remote); err != nil {
				return fmt.Errorf("failed to add remote: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Added remote", remote.Name))
			fmt.Println(ui.RemoteInfo(remote.Name, remote.URL))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projects, "project", nil, "Restrict sync to these project ids")
	return cmd
}

func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			remotes, err := repo.Remotes()
			if err != nil {
				return err
			}
			if len(remotes) == 0 {
				fmt.Println("No remotes configured.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "URL", "Last Sync")
			for _, remote := range remotes {
				lastSync := "never"
				if !remote.LastSync.IsZero() {
					lastSync = remote.LastSync.Local().Format(time.DateTime)
				}
				table.Append(remote.Name, remote.URL, lastSync)
			}
			table.Render()
			return nil
		},
	}
}

func newRemoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a remote",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			remote, err := findRemote(repo, args[0])
			if err != nil {
				return err
			}

			if _, err := repo.Delete(remote.Kind(), remote.ID); err != nil {
				return fmt.Errorf("failed to remove remote: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Removed remote", remote.Name))
			return nil
		},
	}
}

// remoteExport is the portable YAML shape for sharing remote
// configuration between workspaces.
type remoteExport struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Projects []string `yaml:"projects,omitempty"`
}

func newRemoteExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export remote configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			remotes, err := repo.Remotes()
			if err != nil {
				return err
			}

			exported := make([]remoteExport, 0, len(remotes))
			for _, remote := range remotes {
				exported = append(exported, remoteExport{
					Name:     remote.Name,
					URL:      remote.URL,
					Projects: remote.ProjectIDs,
				})
			}

			data, err := yaml.Marshal(map[string][]remoteExport{"remotes": exported})
			if err != nil {
				return fmt.Errorf("failed to encode remotes: %w", err)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Println(ui.SuccessMessage("Exported remotes to", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write YAML to a file instead of stdout")
	return cmd
}
