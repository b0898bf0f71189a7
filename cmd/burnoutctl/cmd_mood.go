package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrwolf/burnout-server/internal/app"
	"github.com/mrwolf/burnout-server/internal/tracker"
)

var (
	scoreMood    string
	scoreSleep   string
	scoreJournal string
	clearYes     bool
)

// scoreCmd submits one entry through the pipeline
var scoreCmd = &cobra.Command{
	Use:     "score",
	Short:   "Submit a mood entry and print the prediction",
	Example: `  burnoutctl score --mood Sad --sleep 5 --journal "sad and tired"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			out, err := a.Tracker.Submit(cmd.Context(), actor, tracker.Submission{
				Mood:         scoreMood,
				SleepHours:   scoreSleep,
				JournalEntry: scoreJournal,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(w, out)
			}

			printf(w, "Prediction: %s\n", out.Prediction())
			if out.Record != nil {
				printf(w, "Burnout score: %d (%s)\n", out.Record.BurnoutScore, out.Record.Sentiment)
			} else {
				printf(w, "Not recorded: sleep hours must be a number\n")
			}
			for _, tip := range out.Tips {
				printf(w, "  - %s %s%s\n", tip.Title, tip.Text, tip.URL)
			}
			return nil
		})
	},
}

// historyCmd lists stored entries, newest first
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored mood entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			records, err := a.Tracker.History(cmd.Context(), actor)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(w, records)
			}
			if len(records) == 0 {
				printf(w, "No entries for %s\n", actor)
				return nil
			}
			for _, r := range records {
				printf(w, "%s  %-8s sleep=%-4s score=%-3d %-8s %s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.Mood, r.SleepHours, r.BurnoutScore, r.Sentiment, r.JournalEntry)
			}
			return nil
		})
	},
}

// clearCmd deletes all entries for the actor
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all mood entries for the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to delete history for %s without --yes", actor)
		}
		return withApp(func(a *app.App) error {
			n, err := a.Tracker.Clear(cmd.Context(), actor)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted %d entries\n", n)
			return nil
		})
	},
}

// trendCmd prints the seven-day summary
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Summarize the last seven days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			week, err := a.Tracker.Trend(cmd.Context(), actor, time.Now())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(w, week)
			}
			printf(w, "Direction: %s (average %.0f, %d low days)\n", week.Direction, week.AverageScore, week.LowDays)
			for _, d := range week.Days {
				printf(w, "%s %s  entries=%d  average=%.0f  mostly %s\n", d.Date, d.Weekday, d.Entries, d.AverageScore, d.DominantMood)
			}
			return nil
		})
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreMood, "mood", "m", "", "mood label (Happy, Neutral, Tired, Sad, Stressed)")
	scoreCmd.Flags().StringVarP(&scoreSleep, "sleep", "s", "", "hours slept")
	scoreCmd.Flags().StringVarP(&scoreJournal, "journal", "j", "", "journal entry")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
}
