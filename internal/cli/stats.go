package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
)

func init() {
	statsCmd.Flags().BoolVar(&statsMetrics, "metrics", false, "Dump internal counters in Prometheus text format")
	rootCmd.AddCommand(statsCmd)
}

var statsMetrics bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your profile: level, coins, streak, character stats",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	if statsMetrics {
		return metrics.WriteSnapshot(os.Stdout)
	}

	profile, err := a.DB.LoadProfile()
	if err != nil {
		return err
	}
	unlocked, total, err := a.Achievements.Counts()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d  (%d/%d XP to next)\n",
		profile.Level, profile.XP, domain.XPThreshold(profile.Level))
	fmt.Printf("Coins: %d\n", profile.Coins)
	fmt.Printf("Streak: %d days (best %d)\n", profile.Streak, profile.LongestStreak)
	fmt.Printf("Completed goals: %d\n", profile.TotalCompleted)
	fmt.Printf("Achievements: %d/%d\n\n", unlocked, total)

	fmt.Println("Character:")
	for _, cat := range domain.AllStatCategories() {
		v := profile.Stats.Get(cat)
		fmt.Printf("  %-11s %s %d/100\n", cat, progressBar(float64(v)), v)
	}
	fmt.Printf("  %-11s %d   body: %s\n", "overall", profile.Stats.Overall(), profile.Stats.BodyType())
	return nil
}
