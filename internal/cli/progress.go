package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/app/progress"
)

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(incCmd)
	rootCmd.AddCommand(decCmd)
	rootCmd.AddCommand(doneCmd)
}

var setCmd = &cobra.Command{
	Use:   "set GOAL VALUE",
	Short: "Set a goal's progress to an absolute value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

var incCmd = &cobra.Command{
	Use:   "inc GOAL [DELTA]",
	Short: "Increment a goal's progress (default 1)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runInc,
}

var decCmd = &cobra.Command{
	Use:   "dec GOAL [DELTA]",
	Short: "Decrement a goal's progress (default 1)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDec,
}

var doneCmd = &cobra.Command{
	Use:   "done GOAL",
	Short: "Mark a goal complete by setting progress to its target",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func runSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	return mutateProgress(args[0], func(a *app.App, id string) (*progress.Result, error) {
		return a.Progress.SetProgress(id, value, a.Now())
	})
}

func runInc(cmd *cobra.Command, args []string) error {
	delta, err := optionalDelta(args)
	if err != nil {
		return err
	}
	return mutateProgress(args[0], func(a *app.App, id string) (*progress.Result, error) {
		return a.Progress.Increment(id, delta, a.Now())
	})
}

func runDec(cmd *cobra.Command, args []string) error {
	delta, err := optionalDelta(args)
	if err != nil {
		return err
	}
	return mutateProgress(args[0], func(a *app.App, id string) (*progress.Result, error) {
		return a.Progress.Decrement(id, delta, a.Now())
	})
}

func runDone(cmd *cobra.Command, args []string) error {
	return mutateProgress(args[0], func(a *app.App, id string) (*progress.Result, error) {
		g, err := a.Progress.Get(id)
		if err != nil {
			return nil, err
		}
		return a.Progress.SetProgress(id, g.TargetValue, a.Now())
	})
}

func optionalDelta(args []string) (float64, error) {
	if len(args) < 2 {
		return 1, nil
	}
	delta, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid delta %q: %w", args[1], err)
	}
	return delta, nil
}

// mutateProgress resolves the goal, applies the mutation, and prints
// whatever the change earned.
func mutateProgress(ref string, fn func(*app.App, string) (*progress.Result, error)) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a, ref)
	if err != nil {
		return err
	}

	res, err := fn(a, g.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s %g/%g\n",
		res.Goal.Title,
		progressBar(res.Goal.ProgressPercent()),
		res.Goal.CurrentValue, res.Goal.TargetValue,
	)
	if res.CoinsEarned > 0 {
		fmt.Printf("  +%d coins", res.CoinsEarned)
		if res.XPEarned > 0 {
			fmt.Printf("  +%d XP", res.XPEarned)
		}
		fmt.Println()
	}
	if res.Completed {
		fmt.Println("  Goal complete!")
	}
	if res.LeveledUp {
		fmt.Printf("  Level up! You are now level %d\n", res.LevelAfter)
	}
	for _, u := range res.Unlocked {
		fmt.Printf("  Achievement unlocked: %s (%s, +%d coins)\n", u.Title, u.Rarity, u.CoinsEarned)
	}
	return nil
}
