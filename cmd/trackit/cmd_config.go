package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write layered configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigListCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			_, manager, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			entry := manager.Get(args[0])
			if entry == nil {
				return fmt.Errorf("key %s is not set", args[0])
			}
			fmt.Println(entry.AsString())
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key at a configuration level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			_, manager, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			parsed, err := config.ParseLevel(level)
			if err != nil {
				return err
			}
			if err := manager.Set(args[0], args[1], parsed); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("Set", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "workspace", "Level to write: workspace, user, or system")
	return cmd
}

func newConfigUnsetCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a key from a configuration level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			_, manager, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			parsed, err := config.ParseLevel(level)
			if err != nil {
				return err
			}
			if err := manager.Unset(args[0], parsed); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("Unset", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "workspace", "Level to write: workspace, user, or system")
	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration entry with its level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			_, manager, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			entries := manager.List()
			if len(entries) == 0 {
				fmt.Println("No configuration set.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value", "Level")
			for _, entry := range entries {
				table.Append(entry.Key, entry.AsString(), entry.Level.String())
			}
			table.Render()
			return nil
		},
	}
}
