package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		lessons, err := s.LessonRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}

		if len(lessons) == 0 {
			fmt.Println("No lessons yet. Try: escucha generate \"en el mercado\"")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-12s  %-16s  %s\n",
			"ID", "Created", "Level", "Mode", "Title")
		fmt.Println(strings.Repeat("─", 110))
		for _, l := range lessons {
			fmt.Printf("%-36s  %-16s  %-12s  %-16s  %s\n",
				l.ID,
				l.CreatedAt.Local().Format("2006-01-02 15:04"),
				l.Level,
				l.Mode,
				l.Title,
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntP("limit", "n", 20, "Number of lessons to show")
}
