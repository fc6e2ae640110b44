package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		plan, err := s.LessonRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get lesson: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("lesson %s not found", args[0])
		}

		fmt.Println(renderPlan(plan))
		return nil
	},
}
