package cli

import (
	"github.com/spf13/cobra"
)

func newAchievementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievement",
		Short: "Achievement commands",
	}

	var user string
	check := &cobra.Command{
		Use:   "check",
		Short: "Check a player's 1000M achievement",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AchievementResult
			if err := client.Get("/api/check-user-achievement"+userQuery(user), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	check.Flags().StringVar(&user, "user", "", "Player identifier (required)")
	_ = check.MarkFlagRequired("user")
	cmd.AddCommand(check)

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players by currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult
			if err := client.Get("/api/leaderboard", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every player ordered by currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UsersResult
			if err := client.Get("/api/users", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
