package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List unlocked achievements",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	unlocked, err := a.Achievements.List()
	if err != nil {
		return err
	}
	got, total, err := a.Achievements.Counts()
	if err != nil {
		return err
	}

	fmt.Printf("Unlocked %d of %d\n\n", got, total)
	if len(unlocked) == 0 {
		fmt.Println("Nothing yet. Complete a goal to earn your first one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tRARITY\tCOINS\tEARNED")
	for _, u := range unlocked {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			u.Title, u.Rarity, u.CoinsEarned, u.EarnedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
