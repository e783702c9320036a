package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/cmd/ui"
	"github.com/utkarsh5026/TrackIt/pkg/model"
)

func newIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Create and manage issues",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newIssueCreateCmd())
	cmd.AddCommand(newIssueListCmd())
	cmd.AddCommand(newIssueShowCmd())
	cmd.AddCommand(newIssueCloseCmd())
	cmd.AddCommand(newIssueAssignCmd())
	cmd.AddCommand(newIssueLabelCmd())
	return cmd
}

func newIssueCreateCmd() *cobra.Command {
	var description, priority, project string
	var labels, assignees []string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			cfg, _, err := loadConfig(cmd.Context(), repo)
			if err != nil {
				return err
			}

			author := cfg.UserName()
			if author == "" {
				author = "unknown"
			}

			issue := model.NewIssue(args[0], description, author)
			issue.ProjectID = project
			for _, label := range labels {
				issue.AddLabel(label)
			}
			for _, assignee := range assignees {
				issue.Assign(assignee)
			}
			if priority != "" {
				parsed, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				issue.Priority = parsed
			}

			if _, err := repo.Create(issue); err != nil {
				return fmt.Errorf("failed to create issue: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Created issue", issue.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Issue description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&project, "project", "", "Associated project id")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Labels to attach")
	cmd.Flags().StringSliceVarP(&assignees, "assign", "a", nil, "Assignees")
	return cmd
}

func newIssueListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			issues, err := repo.Issues()
			if err != nil {
				return err
			}

			var filter model.Status
			if status != "" {
				filter, err = model.ParseStatus(status)
				if err != nil {
					return err
				}
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Status", "Priority", "Title", "Assignees")

			shown := 0
			for _, issue := range issues {
				if status != "" && issue.Status != filter {
					continue
				}
				shown++

				assignees := ""
				if len(issue.Assignees) > 0 {
					assignees = issue.Assignees[0]
					if len(issue.Assignees) > 1 {
						assignees += fmt.Sprintf(" +%d", len(issue.Assignees)-1)
					}
				}

				title := issue.Title
				if len(title) > 50 {
					title = title[:47] + "..."
				}

				table.Append(
					issue.ID[:8],
					string(issue.Status),
					string(issue.Priority),
					title,
					assignees,
				)
			}

			if shown == 0 {
				fmt.Println("No issues found.")
				return nil
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	return cmd
}

func newIssueShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one issue in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			issue, err := resolveIssue(repo, args[0])
			if err != nil {
				return err
			}

			fmt.Println(ui.FormatIssueDetailed(issue))
			return nil
		},
	}
}

func newIssueCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			issue, err := resolveIssue(repo, args[0])
			if err != nil {
				return err
			}

			if err := issue.SetStatus(model.StatusClosed); err != nil {
				return err
			}
			if _, err := repo.Update(issue); err != nil {
				return fmt.Errorf("failed to close issue: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Closed issue", issue.ID[:8]))
			return nil
		},
	}
}

func newIssueAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> <user>",
		Short: "Assign an issue to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			issue, err := resolveIssue(repo, args[0])
			if err != nil {
				return err
			}

			issue.Assign(args[1])
			if _, err := repo.Update(issue); err != nil {
				return fmt.Errorf("failed to assign issue: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Assigned", issue.ID[:8], "to", args[1]))
			return nil
		},
	}
}

func newIssueLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label <id> <label>...",
		Short: "Attach labels to an issue",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			issue, err := resolveIssue(repo, args[0])
			if err != nil {
				return err
			}

			for _, label := range args[1:] {
				issue.AddLabel(label)
			}
			if _, err := repo.Update(issue); err != nil {
				return fmt.Errorf("failed to label issue: %w", err)
			}

			fmt.Println(ui.SuccessMessage("Labeled", issue.ID[:8]))
			return nil
		},
	}
}
