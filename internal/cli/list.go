package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/app/progress"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	listCmd.Flags().StringVarP(&listFreq, "freq", "f", "", "Only goals with this frequency")
	listCmd.Flags().BoolVar(&listDone, "done", false, "Only completed goals")
	listCmd.Flags().BoolVar(&listOpen, "open", false, "Only incomplete goals")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include inactive goals")
	rootCmd.AddCommand(listCmd)
}

var (
	listFreq string
	listDone bool
	listOpen bool
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	f := progress.Filter{}
	if listFreq != "" {
		f.Frequency = domain.Frequency(listFreq)
	}
	if listDone {
		t := true
		f.Completed = &t
	}
	if listOpen {
		fv := false
		f.Completed = &fv
	}
	if !listAll {
		t := true
		f.Active = &t
	}

	goals, err := a.Progress.List(f)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet. Run 'ascend add \"My goal\"' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGOAL\tFREQ\tDIFF\tPROGRESS\t\tDONE")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%g/%g\t%s\n",
			shortID(g.ID),
			g.Title,
			g.Frequency,
			g.Difficulty,
			progressBar(g.ProgressPercent()),
			g.CurrentValue, g.TargetValue,
			checkMark(g.IsCompleted()),
		)
	}
	return w.Flush()
}
