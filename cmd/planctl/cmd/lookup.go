package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// venueCmd represents the venue command group
var venueCmd = &cobra.Command{
	Use:   "venue",
	Short: "Venue commands (read-only)",
}

// venueListCmd lists all venues
var venueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all venues",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		res := e.venues.List(context.Background())
		if res.IsError() {
			return fmt.Errorf("list venues: %w", res.Err)
		}
		venues := res.Value

		if len(venues) == 0 {
			fmt.Println("No venues found.")
			return nil
		}

		fmt.Printf("\n%-36s  %-28s  %-30s  %s\n", "ID", "NAME", "ADDRESS", "CAPACITY")
		fmt.Println(strings.Repeat("-", 105))

		for _, v := range venues {
			capacity := "-"
			if v.Capacity != nil {
				capacity = fmt.Sprintf("%d", *v.Capacity)
			}
			fmt.Printf("%-36s  %-28s  %-30s  %s\n",
				v.ID,
				truncate(v.Name, 28),
				truncate(strOrDash(v.Address), 30),
				capacity,
			)
		}
		fmt.Printf("\nTotal: %d venue(s)\n", len(venues))

		return nil
	},
}

// tagCmd represents the tag command group
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Mission tag commands (read-only)",
}

// tagListCmd lists all mission tags
var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all mission tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		res := e.tags.List(context.Background())
		if res.IsError() {
			return fmt.Errorf("list tags: %w", res.Err)
		}
		tags := res.Value

		if len(tags) == 0 {
			fmt.Println("No mission tags found.")
			return nil
		}

		fmt.Printf("\n%-36s  %-20s  %s\n", "ID", "SLUG", "LABEL")
		fmt.Println(strings.Repeat("-", 80))

		for _, t := range tags {
			fmt.Printf("%-36s  %-20s  %s\n", t.ID, t.Slug, t.Label)
		}
		fmt.Printf("\nTotal: %d tag(s)\n", len(tags))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(venueCmd)
	venueCmd.AddCommand(venueListCmd)

	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagListCmd)
}
