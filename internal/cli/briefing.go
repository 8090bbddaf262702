package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(briefingCmd)
}

var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Show today's penalty briefing and pending notifications",
	Long: `Show what happened since you last checked in: penalties taken for
neglected goals and any pending level-up or achievement notifications.
Each briefing is delivered once.`,
	RunE: runBriefing,
}

func runBriefing(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	// Catch up on scheduled resets and missed-goal penalties first, so
	// the briefing reflects the state of the day it opens.
	if _, err := a.Schedule.Tick(a.Now()); err != nil {
		return err
	}
	if _, err := a.Schedule.RolloverSweep(a.Now()); err != nil {
		return err
	}
	if err := a.Schedule.ForegroundCheck(a.Now()); err != nil {
		return err
	}

	penalties, err := a.Penalties.Briefing(a.Now())
	if err != nil {
		return err
	}
	signals, err := a.Signals.Consume()
	if err != nil {
		return err
	}

	if len(penalties) == 0 && len(signals) == 0 {
		fmt.Println("All caught up. Nothing to report.")
		return nil
	}

	if len(penalties) > 0 {
		fmt.Println("Penalties:")
		for _, p := range penalties {
			fmt.Printf("  %s (%s): -%d coins, -%d stat points\n",
				p.GoalTitle, p.Reason, p.CoinPenalty, p.StatPenalty)
		}
		fmt.Println()
	}
	for _, s := range signals {
		if s.Body != "" {
			fmt.Printf("%s — %s\n", s.Title, s.Body)
		} else {
			fmt.Println(s.Title)
		}
	}
	return nil
}
