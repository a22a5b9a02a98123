package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plannery/plannery-go/internal/domain"
)

var (
	templateName     string
	templateDesc     string
	templateTeamSize int
	templateSkills   []string
	templateStart    string
	templateEnd      string
	templateVenue    string
	templateTagIDs   []string
	templateForce    bool
)

// templateCmd represents the template command group
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Mission template commands",
	Long: `Commands for working with mission templates.

Examples:
  # List all templates
  planctl template list

  # Create a template
  planctl template create --name "Stage Setup" --team-size 4 --skill rigging

  # Change a template's team size
  planctl template update <id> --team-size 6

  # Delete a template
  planctl template delete <id> --force`,
}

// templateListCmd lists all mission templates
var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all mission templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		res := e.templates.List(context.Background())
		if res.IsError() {
			return fmt.Errorf("list templates: %w", res.Err)
		}
		templates := res.Value

		if len(templates) == 0 {
			fmt.Println("No mission templates found.")
			return nil
		}

		fmt.Printf("\n%-36s  %-28s  %-5s  %-20s  %s\n",
			"ID", "NAME", "TEAM", "SKILLS", "TAGS")
		fmt.Println(strings.Repeat("-", 110))

		for _, t := range templates {
			labels := make([]string, 0, len(t.Tags))
			for _, tag := range t.Tags {
				labels = append(labels, tag.Slug)
			}
			fmt.Printf("%-36s  %-28s  %-5d  %-20s  %s\n",
				t.ID,
				truncate(t.Name, 28),
				t.TeamSize,
				truncate(strings.Join(t.RequiredSkills, ","), 20),
				strings.Join(labels, ","),
			)
		}
		fmt.Printf("\nTotal: %d template(s)\n", len(templates))

		return nil
	},
}

// templateCreateCmd creates a mission template
var templateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new mission template",
	Long: `Create a new mission template.

Example:
  planctl template create --name "Stage Setup" --team-size 4 --skill rigging --tag <tag-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		payload := domain.MissionTemplateCreate{
			Name:           templateName,
			TeamSize:       templateTeamSize,
			RequiredSkills: templateSkills,
			TagIDs:         templateTagIDs,
		}
		if cmd.Flags().Changed("description") {
			payload.Description = &templateDesc
		}
		if cmd.Flags().Changed("start-time") {
			payload.DefaultStartTime = &templateStart
		}
		if cmd.Flags().Changed("end-time") {
			payload.DefaultEndTime = &templateEnd
		}
		if cmd.Flags().Changed("venue") {
			payload.DefaultVenueID = &templateVenue
		}

		created, err := e.templates.Create(context.Background(), payload)
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}

		fmt.Printf("\nMission template created successfully:\n")
		fmt.Printf("  ID:        %s\n", created.ID)
		fmt.Printf("  Name:      %s\n", created.Name)
		fmt.Printf("  Team size: %d\n", created.TeamSize)

		return nil
	},
}

// templateUpdateCmd updates template fields
var templateUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update mission template fields",
	Long: `Update an existing mission template. Only the flags you pass are
sent; everything else stays untouched on the server.

Example:
  planctl template update <id> --team-size 6 --skill rigging --skill audio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		var patch domain.MissionTemplatePatch
		changed := false
		if cmd.Flags().Changed("name") {
			patch.Name = &templateName
			changed = true
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &templateDesc
			changed = true
		}
		if cmd.Flags().Changed("team-size") {
			patch.TeamSize = &templateTeamSize
			changed = true
		}
		if cmd.Flags().Changed("skill") {
			patch.RequiredSkills = &templateSkills
			changed = true
		}
		if cmd.Flags().Changed("start-time") {
			patch.DefaultStartTime = &templateStart
			changed = true
		}
		if cmd.Flags().Changed("end-time") {
			patch.DefaultEndTime = &templateEnd
			changed = true
		}
		if cmd.Flags().Changed("venue") {
			patch.DefaultVenueID = &templateVenue
			changed = true
		}
		if cmd.Flags().Changed("tag") {
			patch.TagIDs = &templateTagIDs
			changed = true
		}
		if !changed {
			return fmt.Errorf("specify at least one field flag to update")
		}

		updated, err := e.templates.Update(context.Background(), args[0], patch)
		if err != nil {
			return fmt.Errorf("update template: %w", err)
		}

		fmt.Printf("Mission template updated: %s\n", updated.Name)
		return nil
	},
}

// templateDeleteCmd deletes a mission template
var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a mission template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !templateForce {
			fmt.Printf("Delete mission template '%s'? [y/N]: ", args[0])
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

		if err := e.templates.Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete template: %w", err)
		}

		fmt.Printf("Mission template deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateUpdateCmd)
	templateCmd.AddCommand(templateDeleteCmd)

	templateCreateCmd.Flags().StringVar(&templateName, "name", "", "template name (required)")
	templateCreateCmd.Flags().StringVar(&templateDesc, "description", "", "template description")
	templateCreateCmd.Flags().IntVar(&templateTeamSize, "team-size", 1, "required team size")
	templateCreateCmd.Flags().StringArrayVar(&templateSkills, "skill", nil, "required skill (repeatable)")
	templateCreateCmd.Flags().StringVar(&templateStart, "start-time", "", "default start time (HH:MM)")
	templateCreateCmd.Flags().StringVar(&templateEnd, "end-time", "", "default end time (HH:MM)")
	templateCreateCmd.Flags().StringVar(&templateVenue, "venue", "", "default venue id")
	templateCreateCmd.Flags().StringArrayVar(&templateTagIDs, "tag", nil, "tag id (repeatable)")
	templateCreateCmd.MarkFlagRequired("name")

	templateUpdateCmd.Flags().StringVar(&templateName, "name", "", "new template name")
	templateUpdateCmd.Flags().StringVar(&templateDesc, "description", "", "new description")
	templateUpdateCmd.Flags().IntVar(&templateTeamSize, "team-size", 0, "new team size")
	templateUpdateCmd.Flags().StringArrayVar(&templateSkills, "skill", nil, "replacement skill (repeatable)")
	templateUpdateCmd.Flags().StringVar(&templateStart, "start-time", "", "new default start time (HH:MM)")
	templateUpdateCmd.Flags().StringVar(&templateEnd, "end-time", "", "new default end time (HH:MM)")
	templateUpdateCmd.Flags().StringVar(&templateVenue, "venue", "", "new default venue id")
	templateUpdateCmd.Flags().StringArrayVar(&templateTagIDs, "tag", nil, "replacement tag id (repeatable)")

	templateDeleteCmd.Flags().BoolVar(&templateForce, "force", false, "skip confirmation prompt")
}
