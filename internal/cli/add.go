package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Goal description")
	addCmd.Flags().StringVarP(&addFreq, "freq", "f", "daily", "Frequency: daily, weekly, monthly, yearly")
	addCmd.Flags().StringVarP(&addType, "type", "t", "numeric", "Tracking type: binary, numeric, habit")
	addCmd.Flags().StringVar(&addDifficulty, "difficulty", "medium", "Difficulty: easy, medium, hard, epic")
	addCmd.Flags().Float64Var(&addTarget, "target", 1, "Target value to reach")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "Icon name")
	addCmd.Flags().BoolVar(&addRepeating, "repeating", false, "Reset automatically each period")
	rootCmd.AddCommand(addCmd)
}

var (
	addDesc       string
	addFreq       string
	addType       string
	addDifficulty string
	addTarget     float64
	addIcon       string
	addRepeating  bool
)

var addCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a new goal",
	Long: `Add a new goal to track.

Examples:
  ascend add "Read 20 pages" --target 20 --freq daily
  ascend add "Morning run" --type habit --difficulty hard --repeating
  ascend add "Ship side project" --freq monthly --difficulty epic`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g := domain.Goal{
		Title:       args[0],
		Description: addDesc,
		Frequency:   domain.Frequency(addFreq),
		Type:        domain.TrackingType(addType),
		Difficulty:  domain.Difficulty(addDifficulty),
		TargetValue: addTarget,
		Icon:        addIcon,
		Active:      true,
		Repeating:   addRepeating,
	}

	created, err := a.Progress.Create(g, a.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Added goal %s (%s, %s, target %g)\n",
		created.Title, created.Frequency, created.Difficulty, created.TargetValue)
	fmt.Printf("ID: %s\n", shortID(created.ID))
	return nil
}
