package cmd

import (
	"fmt"

	"github.com/Yates-Labs/novelist/internal/config"
	"github.com/Yates-Labs/novelist/internal/publish"
	"github.com/spf13/cobra"
)

var (
	publishDir         string
	publishPublic      bool
	publishDescription string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload a finished draft as a GitHub gist",
	Long: `Upload the chapters and metadata of a finished draft as one gist.

Requires GITHUB_TOKEN with the gist scope. Gists are secret unless --public is set.

Examples:
  novelist publish
  novelist publish --dir ./drafts/saltwind --public`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishDir, "dir", "./novel_output", "Draft directory to publish")
	publishCmd.Flags().BoolVar(&publishPublic, "public", false, "Create a public gist")
	publishCmd.Flags().StringVar(&publishDescription, "description", "", "Gist description (defaults to the title and chapter count)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	if env.GitHubToken == "" {
		return fmt.Errorf("%w: GITHUB_TOKEN environment variable is required", config.ErrInvalidEnv)
	}

	client := publish.NewClient(env.GitHubToken)
	url, err := publish.Gist(cmd.Context(), client, publishDir, publish.GistOptions{
		Public:      publishPublic,
		Description: publishDescription,
	})
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Println(successStyle.Render("✓ Published " + publishDir))
	fmt.Println(beatStyle.Render(url))
	return nil
}
