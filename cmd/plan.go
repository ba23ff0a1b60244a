package cmd

import (
	"fmt"

	"github.com/Yates-Labs/novelist/internal/config"
	"github.com/Yates-Labs/novelist/internal/logger"
	"github.com/Yates-Labs/novelist/internal/orchestrator"
	"github.com/spf13/cobra"
)

var (
	planConfigPath string
	planSeed       int64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan and print a chapter outline without drafting",
	Long: `Run only the outline step and print one beat per chapter.

Examples:
  novelist plan
  novelist plan --config story.json --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planConfigPath, "config", "", "Path to a JSON story config (defaults are used when omitted)")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "Seed for the offline backend (random when omitted)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	log, err := logger.New(env.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, _, err := loadStory(planConfigPath)
	if err != nil {
		return err
	}

	generator, backend, err := newGenerator(env, seedFlag(cmd, planSeed))
	if err != nil {
		return err
	}

	agent, err := orchestrator.NewNovelAgent(generator, cfg, orchestrator.WithLogger(log))
	if err != nil {
		return err
	}

	outline, err := agent.Plan(cmd.Context())
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("→ %q planned with %s", cfg.Title, backend)))
	fmt.Println()
	printOutline(outline)
	return nil
}
