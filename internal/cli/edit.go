package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "New description")
	editCmd.Flags().StringVar(&editDifficulty, "difficulty", "", "New difficulty")
	editCmd.Flags().Float64Var(&editTarget, "target", 0, "New target value")
	editCmd.Flags().StringVar(&editIcon, "icon", "", "New icon")
	editCmd.Flags().BoolVar(&editPause, "pause", false, "Deactivate the goal")
	editCmd.Flags().BoolVar(&editResume, "resume", false, "Reactivate the goal")
	rootCmd.AddCommand(editCmd)
}

var (
	editTitle      string
	editDesc       string
	editDifficulty string
	editTarget     float64
	editIcon       string
	editPause      bool
	editResume     bool
)

var editCmd = &cobra.Command{
	Use:   "edit GOAL",
	Short: "Edit a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a, args[0])
	if err != nil {
		return err
	}

	if editTitle != "" {
		g.Title = editTitle
	}
	if cmd.Flags().Changed("desc") {
		g.Description = editDesc
	}
	if editDifficulty != "" {
		g.Difficulty = domain.Difficulty(editDifficulty)
	}
	if cmd.Flags().Changed("target") {
		g.TargetValue = editTarget
	}
	if cmd.Flags().Changed("icon") {
		g.Icon = editIcon
	}
	if editPause {
		g.Active = false
	}
	if editResume {
		g.Active = true
	}

	if err := a.Progress.Update(*g, a.Now()); err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", g.Title)
	return nil
}
