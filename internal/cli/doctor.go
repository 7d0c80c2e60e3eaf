package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tsforge-labs/tsforge/internal/npm"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external toolchain is available",
	Long:  `Verify that node, npm, and git are on PATH and that npm is recent enough for workspaces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false

		if path, err := exec.LookPath("node"); err == nil {
			fmt.Printf("  ok  node      %s\n", path)
		} else {
			fmt.Println("FAIL  node      not found on PATH")
			failed = true
		}

		if err := npm.CheckVersion(); err == nil {
			fmt.Printf("  ok  npm       >= %s\n", npm.MinVersion)
		} else {
			fmt.Printf("FAIL  npm       %v\n", err)
			failed = true
		}

		// Git is optional: npm init works without it, but repository
		// metadata fields stay empty.
		if path, err := exec.LookPath("git"); err == nil {
			fmt.Printf("  ok  git       %s\n", path)
		} else {
			fmt.Println("warn  git       not found on PATH (optional)")
		}

		if failed {
			return fmt.Errorf("required tools are missing")
		}
		return nil
	},
}
