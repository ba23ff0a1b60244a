package cmd

import (
	"fmt"

	"github.com/Yates-Labs/novelist/internal/archive"
	"github.com/spf13/cobra"
)

var (
	historyDir string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the snapshot runs recorded in a draft directory",
	Long: `List the runs committed by "novelist write --snapshot", newest first.

Examples:
  novelist history
  novelist history --dir ./drafts/saltwind`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDir, "dir", "./novel_output", "Draft directory to inspect")
}

func runHistory(cmd *cobra.Command, args []string) error {
	entries, err := archive.History(historyDir)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No snapshots recorded in " + historyDir)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Snapshots in %s:", historyDir)))
	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n",
			beatStyle.Render(e.ShortHash),
			mutedStyle.Render(e.When.Format("2006-01-02 15:04")),
			e.Subject)
	}
	return nil
}
