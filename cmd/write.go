package cmd

import (
	"fmt"

	"github.com/Yates-Labs/novelist/internal/archive"
	"github.com/Yates-Labs/novelist/internal/config"
	"github.com/Yates-Labs/novelist/internal/logger"
	"github.com/Yates-Labs/novelist/internal/memory"
	"github.com/Yates-Labs/novelist/internal/orchestrator"
	"github.com/Yates-Labs/novelist/internal/story"
	"github.com/spf13/cobra"
)

var (
	writeConfigPath string
	outputDir       string
	writeSeed       int64
	reuseOutline    bool
	snapshot        bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Plan an outline and draft every chapter",
	Long: `Plan a chapter outline and draft each chapter in order.

The output directory receives chapter-01.txt ... chapter-NN.txt and
story-config.json, which holds the config and the outline used. That file can
be passed back with --config; add --reuse-outline to redraft the chapters
without planning a new outline.

Examples:
  novelist write
  novelist write --config story.json --output ./drafts/saltwind
  novelist write --config ./drafts/saltwind/story-config.json --reuse-outline --seed 7
  novelist write --config story.json --snapshot`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeConfigPath, "config", "", "Path to a JSON story config (defaults are used when omitted)")
	writeCmd.Flags().StringVar(&outputDir, "output", "./novel_output", "Directory for chapters and metadata")
	writeCmd.Flags().Int64Var(&writeSeed, "seed", 0, "Seed for the offline backend (random when omitted)")
	writeCmd.Flags().BoolVar(&reuseOutline, "reuse-outline", false, "Use the outline stored in the config file instead of planning")
	writeCmd.Flags().BoolVar(&snapshot, "snapshot", false, "Commit the finished draft to a git repository in the output directory")
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	log, err := logger.New(env.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, outline, err := loadStory(writeConfigPath)
	if err != nil {
		return err
	}

	generator, backend, err := newGenerator(env, seedFlag(cmd, writeSeed))
	if err != nil {
		return err
	}

	opts := []orchestrator.Option{orchestrator.WithLogger(log)}
	if reuseOutline {
		if len(outline) == 0 {
			return fmt.Errorf("%w: --reuse-outline needs a config with an outline", story.ErrInvalidConfig)
		}
		if len(outline) != cfg.ChapterCount {
			return fmt.Errorf("%w: outline has %d beats but chapter_count is %d", story.ErrInvalidConfig, len(outline), cfg.ChapterCount)
		}
		mem := memory.New()
		mem.RecordOutline(outline)
		opts = append(opts, orchestrator.WithMemory(mem))
	}
	if snapshot {
		opts = append(opts, orchestrator.WithSnapshotter(archive.GitSnapshotter{}))
	}

	agent, err := orchestrator.NewNovelAgent(generator, cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("→ Drafting %q with %s", cfg.Title, backend)))
	fmt.Println()

	paths, err := agent.Write(ctx, outputDir)
	if err != nil {
		return fmt.Errorf("draft failed: %w", err)
	}

	printOutline(agent.Memory().Outline())

	fmt.Println(headerStyle.Render("Files:"))
	for _, p := range paths {
		fmt.Println(successStyle.Render("✓ " + p))
	}
	return nil
}
