package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/tempo/internal/calendar"
	"github.com/JonnyWalker81/tempo/internal/models"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommendations for a user",
	Long:  `Compute recommendations for one user and print them as JSON, or as an iCalendar file with --ics.`,
	RunE:  runRecommend,
}

var (
	recommendUser  string
	recommendDate  string
	recommendLimit int
	recommendMood  int
	recommendICS   bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "User id (required)")
	recommendCmd.Flags().StringVar(&recommendDate, "date", "", "Reference date, YYYY-MM-DD (default: today)")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Number of recommendations, 5-10 (default: engine.default_limit)")
	recommendCmd.Flags().IntVar(&recommendMood, "mood", 0, "Current mood 1-5 (default: latest recorded)")
	recommendCmd.Flags().BoolVar(&recommendICS, "ics", false, "Print an iCalendar file instead of JSON")
	_ = recommendCmd.MarkFlagRequired("user")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	q := models.RecommendationQuery{Limit: recommendLimit}
	if recommendDate != "" {
		date, err := time.ParseInLocation(time.DateOnly, recommendDate, a.location)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		q.ReferenceDate = &date
	}
	if cmd.Flags().Changed("mood") {
		q.CurrentMood = &recommendMood
	}

	resp, err := a.recommendationService().GetRecommendations(ctx, recommendUser, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recommendICS {
		return calendar.Encode(out, resp.Recommendations, time.Now())
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
