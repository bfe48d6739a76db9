package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/tempo/internal/calendar"
	"github.com/JonnyWalker81/tempo/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import-ics <file>",
	Short: "Import events from an iCalendar file",
	Long: `Read VEVENTs from an .ics file into a user's events. Recurring events are
expanded between --from and --to. Re-importing the same file updates events in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importUser string
	importFrom string
	importTo   string
)

func init() {
	importCmd.Flags().StringVarP(&importUser, "user", "u", "", "User id that owns the events (required)")
	importCmd.Flags().StringVar(&importFrom, "from", "", "Expand recurring events from this date, YYYY-MM-DD (default: 30 days ago)")
	importCmd.Flags().StringVar(&importTo, "to", "", "Expand recurring events until this date, YYYY-MM-DD (default: 60 days ahead)")
	_ = importCmd.MarkFlagRequired("user")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	today := time.Now().In(a.location)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, a.location)
	from, err := dateFlag(importFrom, today.AddDate(0, 0, -30), a.location)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := dateFlag(importTo, today.AddDate(0, 0, 60), a.location)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if !to.After(from) {
		return fmt.Errorf("--to must be after --from")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open calendar: %w", err)
	}
	defer f.Close()

	imported, err := calendar.Decode(f, calendar.ImportOptions{
		UserID:   importUser,
		Location: a.location,
		From:     from,
		To:       to,
	})
	if err != nil {
		return err
	}

	for _, c := range imported.Categories {
		if err := a.saveCategory(ctx, c); err != nil {
			return fmt.Errorf("failed to save category %s: %w", c.ID, err)
		}
	}

	saved := 0
	if len(imported.Events) > 0 {
		events, err := a.repos.Events.CreateBatch(ctx, imported.Events)
		if err != nil {
			return fmt.Errorf("failed to save events: %w", err)
		}
		saved = len(events)
	}

	logger.Info("calendar imported",
		logger.String("user_id", importUser),
		logger.String("file", args[0]),
		logger.Int("events", saved),
		logger.Int("categories", len(imported.Categories)),
		logger.Int("skipped", imported.Skipped),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d events (%d categories, %d skipped)\n",
		saved, len(imported.Categories), imported.Skipped)
	return nil
}

// dateFlag parses a YYYY-MM-DD flag value in loc, or returns def when empty
func dateFlag(value string, def time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}
