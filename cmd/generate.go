package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/escuchalab/escucha/internal/ai"
	"github.com/escuchalab/escucha/internal/generator"
	"github.com/escuchalab/escucha/internal/lesson"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a new listening lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelArg, _ := cmd.Flags().GetString("level")
		modeArg, _ := cmd.Flags().GetString("mode")

		level, err := lesson.ParseLevel(levelArg)
		if err != nil {
			return err
		}
		mode, err := lesson.ParseMode(modeArg)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, err := ai.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		svc := generator.NewService(provider, nil, generator.DefaultConfig())
		plan, err := svc.Generate(ctx, generator.Input{
			Topic: args[0],
			Level: level,
			Mode:  mode,
		})
		if err != nil {
			return err
		}

		if err := s.LessonRepo().Save(ctx, plan); err != nil {
			return fmt.Errorf("save lesson: %w", err)
		}

		fmt.Println(renderPlan(plan))
		fmt.Printf("Saved as %s\n", plan.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("level", "l", "beginner", "Proficiency level (intro, beginner, intermediate, advanced)")
	generateCmd.Flags().StringP("mode", "m", "standard", "Lesson mode (standard, vocabulary, accent_challenge)")
}
