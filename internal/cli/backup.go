package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
)

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import the full application state",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write a JSON backup to FILE (or stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all state with the contents of a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		return a.Backup.Export(os.Stdout, a.Now())
	}

	if err := a.Backup.ExportFile(args[0], a.Now()); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", args[0])
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Backup.ImportFile(args[0]); err != nil {
		return err
	}
	fmt.Printf("Imported %s\n", args[0])
	return nil
}
