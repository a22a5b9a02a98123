package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plannery/plannery-go/internal/domain"
)

var (
	projectName   string
	projectDesc   string
	projectStart  string
	projectEnd    string
	projectBudget int64
	projectVenues []string
	projectForce  bool
)

// projectCmd represents the project command group
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project commands",
	Long: `Commands for working with planning projects.

Examples:
  # List all projects
  planctl project list

  # Show one project
  planctl project show <id>

  # Create a project
  planctl project create --name "Summer Festival" --start 2026-06-01 --end 2026-06-14

  # Rename a project
  planctl project update <id> --name "Autumn Festival"

  # Delete a project
  planctl project delete <id> --force`,
}

// projectListCmd lists all projects
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		res := e.projects.List(context.Background())
		if res.IsError() {
			return fmt.Errorf("list projects: %w", res.Err)
		}
		projects := res.Value

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("\n%-36s  %-28s  %-12s  %-12s  %s\n",
			"ID", "NAME", "START", "END", "VENUES")
		fmt.Println(strings.Repeat("-", 100))

		for _, p := range projects {
			fmt.Printf("%-36s  %-28s  %-12s  %-12s  %d\n",
				p.ID,
				truncate(p.Name, 28),
				strOrDash(p.StartDate),
				strOrDash(p.EndDate),
				len(p.Venues),
			)
		}
		fmt.Printf("\nTotal: %d project(s)\n", len(projects))

		return nil
	},
}

// projectShowCmd shows one project with its venues
var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		res := e.projects.Get(context.Background(), args[0])
		if res.IsError() {
			return fmt.Errorf("get project: %w", res.Err)
		}
		if !res.IsSuccess() {
			return fmt.Errorf("project not found: %s", args[0])
		}
		p := res.Value

		fmt.Println("\nProject Details:")
		fmt.Printf("  ID:          %s\n", p.ID)
		fmt.Printf("  Name:        %s\n", p.Name)
		fmt.Printf("  Description: %s\n", strOrDash(p.Description))
		fmt.Printf("  Start:       %s\n", strOrDash(p.StartDate))
		fmt.Printf("  End:         %s\n", strOrDash(p.EndDate))
		if p.BudgetCents != nil {
			fmt.Printf("  Budget:      %.2f\n", float64(*p.BudgetCents)/100)
		} else {
			fmt.Printf("  Budget:      -\n")
		}
		fmt.Printf("  Team type:   %s\n", strOrDash(p.TeamType))
		fmt.Printf("  Updated:     %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))

		fmt.Printf("\nVenues (%d):\n", len(p.Venues))
		for _, v := range p.Venues {
			fmt.Printf("  - %s (%s)\n", v.Name, v.ID)
		}

		return nil
	},
}

// projectCreateCmd creates a project
var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create a new project.

Example:
  planctl project create --name "Summer Festival" --budget-cents 1200000 --venue <venue-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		payload := domain.ProjectCreate{
			Name:     projectName,
			VenueIDs: projectVenues,
		}
		if cmd.Flags().Changed("description") {
			payload.Description = &projectDesc
		}
		if cmd.Flags().Changed("start") {
			payload.StartDate = &projectStart
		}
		if cmd.Flags().Changed("end") {
			payload.EndDate = &projectEnd
		}
		if cmd.Flags().Changed("budget-cents") {
			payload.BudgetCents = &projectBudget
		}

		created, err := e.projects.Create(context.Background(), payload)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		fmt.Printf("\nProject created successfully:\n")
		fmt.Printf("  ID:   %s\n", created.ID)
		fmt.Printf("  Name: %s\n", created.Name)

		return nil
	},
}

// projectUpdateCmd updates project fields
var projectUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update project fields",
	Long: `Update an existing project. Only the flags you pass are sent;
everything else stays untouched on the server.

Examples:
  planctl project update <id> --name "Autumn Festival"
  planctl project update <id> --venue <venue-id> --venue <other-venue-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		var patch domain.ProjectPatch
		changed := false
		if cmd.Flags().Changed("name") {
			patch.Name = &projectName
			changed = true
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &projectDesc
			changed = true
		}
		if cmd.Flags().Changed("start") {
			patch.StartDate = &projectStart
			changed = true
		}
		if cmd.Flags().Changed("end") {
			patch.EndDate = &projectEnd
			changed = true
		}
		if cmd.Flags().Changed("budget-cents") {
			patch.BudgetCents = &projectBudget
			changed = true
		}
		if cmd.Flags().Changed("venue") {
			patch.VenueIDs = &projectVenues
			changed = true
		}
		if !changed {
			return fmt.Errorf("specify at least one field flag to update")
		}

		updated, err := e.projects.Update(context.Background(), args[0], patch)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		fmt.Printf("Project updated: %s\n", updated.Name)
		return nil
	},
}

// projectDeleteCmd deletes a project
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !projectForce {
			fmt.Printf("Delete project '%s'? [y/N]: ", args[0])
			var confirm string
			fmt.Scanln(&confirm)
			if !strings.EqualFold(confirm, "y") {
				fmt.Println("Canceled.")
				return nil
			}
		}

		e, err := newEnv()
		if err != nil {
			return err
		}

		if err := e.projects.Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}

		fmt.Printf("Project deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "project name (required)")
	projectCreateCmd.Flags().StringVar(&projectDesc, "description", "", "project description")
	projectCreateCmd.Flags().StringVar(&projectStart, "start", "", "start date (YYYY-MM-DD)")
	projectCreateCmd.Flags().StringVar(&projectEnd, "end", "", "end date (YYYY-MM-DD)")
	projectCreateCmd.Flags().Int64Var(&projectBudget, "budget-cents", 0, "budget in cents")
	projectCreateCmd.Flags().StringArrayVar(&projectVenues, "venue", nil, "venue id (repeatable)")
	projectCreateCmd.MarkFlagRequired("name")

	projectUpdateCmd.Flags().StringVar(&projectName, "name", "", "new project name")
	projectUpdateCmd.Flags().StringVar(&projectDesc, "description", "", "new description")
	projectUpdateCmd.Flags().StringVar(&projectStart, "start", "", "new start date (YYYY-MM-DD)")
	projectUpdateCmd.Flags().StringVar(&projectEnd, "end", "", "new end date (YYYY-MM-DD)")
	projectUpdateCmd.Flags().Int64Var(&projectBudget, "budget-cents", 0, "new budget in cents")
	projectUpdateCmd.Flags().StringArrayVar(&projectVenues, "venue", nil, "replacement venue id (repeatable)")

	projectDeleteCmd.Flags().BoolVar(&projectForce, "force", false, "skip confirmation prompt")
}
