package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Yates-Labs/novelist/internal/config"
	"github.com/Yates-Labs/novelist/internal/narrative"
	"github.com/Yates-Labs/novelist/internal/story"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "novelist",
	Short: "Novelist - long-form fiction drafting agent",
	Long: `Novelist drafts a novel from a story configuration.

It plans a chapter outline with one model call, then writes each chapter in
order, feeding a bounded recap of the earlier chapters into every prompt.
Chapters and a metadata file are written to an output directory.

Environment:
  NOVELIST_BACKEND   offline (default, seeded local templates) or openai
  NOVELIST_MODEL     chat model for the openai backend (default: gpt-4o)
  OPENAI_API_KEY     required for the openai backend
  OPENAI_BASE_URL    optional OpenAI-compatible endpoint
  GITHUB_TOKEN       required for publish
  NOVELIST_LOG_MODE  dev, prod or quiet (default)`,
	SilenceUsage: true,
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	beatStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadStory returns the default config when path is empty.
func loadStory(path string) (story.StoryConfig, []string, error) {
	if path == "" {
		return story.DefaultStoryConfig(), nil, nil
	}
	return story.LoadConfig(path)
}

// newGenerator builds the backend selected by the environment. seed is used by the offline
// backend only; a nil seed draws a fresh one.
func newGenerator(env config.Env, seed *int64) (*narrative.Generator, string, error) {
	llmConfig := narrative.DefaultLLMConfig()

	switch env.Backend {
	case config.BackendOpenAI:
		llmConfig.Model = env.Model
		llmConfig.APIKey = env.OpenAIAPIKey
		llmConfig.BaseURL = env.OpenAIBaseURL
		llm, err := narrative.NewOpenAILLM(llmConfig)
		if err != nil {
			return nil, "", err
		}
		return narrative.NewGenerator(llm, llmConfig), fmt.Sprintf("openai (%s)", llmConfig.Model), nil

	default:
		var s int64
		if seed != nil {
			s = *seed
		} else {
			fresh, err := narrative.NewSeed()
			if err != nil {
				return nil, "", err
			}
			s = fresh
		}
		llmConfig.Model = narrative.TemplateModel
		llm := narrative.NewTemplateLLM(s)
		return narrative.NewGenerator(llm, llmConfig), fmt.Sprintf("offline templates (seed %d)", s), nil
	}
}

// seedFlag returns the --seed value only when it was given.
func seedFlag(cmd *cobra.Command, value int64) *int64 {
	if cmd.Flags().Changed("seed") {
		return &value
	}
	return nil
}

func printOutline(outline []string) {
	fmt.Println(headerStyle.Render("Outline:"))
	for i, beat := range outline {
		fmt.Println(beatStyle.Render(fmt.Sprintf("%2d. %s", i+1, beat)))
	}
	fmt.Println()
}
