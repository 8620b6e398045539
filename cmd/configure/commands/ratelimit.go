package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxday/planner-api/internal/config"
	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/models"
)

// NewRatelimitCmd manages the database-stored limiter rate, which the
// server hot-reloads without a restart.
func NewRatelimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Manage rate limit configuration",
		Long:  "List or update the stored rate limit (e.g. 5-S, 100-M).",
	}
	cmd.AddCommand(newRatelimitListCmd())
	cmd.AddCommand(newRatelimitSetCmd())
	return cmd
}

func withRatelimitRepo(fn func(repo *database.RatelimitConfigRepository) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(database.NewRatelimitConfigRepository(db))
}

func newRatelimitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current rate limit configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRatelimitRepo(func(repo *database.RatelimitConfigRepository) error {
				c, err := repo.Get(context.Background())
				if err != nil {
					return fmt.Errorf("get ratelimit config: %w", err)
				}
				if c == nil {
					fmt.Println("No rate limit configuration stored. Use 'ratelimit set' to add one.")
					return nil
				}
				fmt.Printf("Rate limit: %s (updated %s)\n", c.Rate, c.UpdatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newRatelimitSetCmd() *cobra.Command {
	var rate string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the rate limit configuration",
		Long:  "Update the stored rate limit (e.g. 5-S, 100-M, 1000-H).",
		RunE: func(cmd *cobra.Command, args []string) error {
			rate = strings.TrimSpace(rate)
			if rate == "" {
				return fmt.Errorf("--rate is required (e.g. 5-S, 100-M)")
			}
			return withRatelimitRepo(func(repo *database.RatelimitConfigRepository) error {
				if err := repo.Set(context.Background(), &models.RatelimitConfig{Rate: rate}); err != nil {
					return fmt.Errorf("set ratelimit config: %w", err)
				}
				fmt.Println("Rate limit configuration updated.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "Rate (e.g. 5-S, 100-M, 1000-H) (required)")
	return cmd
}
