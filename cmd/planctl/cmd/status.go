package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

const statusTimeout = 15 * time.Second

// statusCmd warms every list resource and reports reachability
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check API availability",
	Long: `Fetch every list resource once and report whether the API answered.

Example:
  planctl status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()

		fmt.Printf("API base URL: %s\n", e.transport.BaseURL())

		warmErr := e.preloader.Warm(ctx)
		if warmErr != nil {
			fmt.Printf("Status:       degraded\n")
		} else {
			fmt.Printf("Status:       ok\n")
		}
		fmt.Printf("Breaker:      %s\n", e.transport.CircuitBreakerState())

		checks := e.health.CheckAll(ctx)
		for _, name := range slices.Sorted(maps.Keys(checks)) {
			if err := checks[name]; err != nil {
				fmt.Printf("Health:       %s: %v\n", name, err)
			} else {
				fmt.Printf("Health:       %s: ok\n", name)
			}
		}

		return warmErr
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
