package cmd

import (
	"fmt"
	"strconv"

	"github.com/zjrosen/dinoguessr/internal/config"
	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/infrastructure/sqlite"
	"github.com/zjrosen/dinoguessr/internal/quiz"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historyDifficulty string
	historyClear      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long:  `List finished games newest first. History is only kept by the sqlite store backend.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of games to show (0 for all)")
	historyCmd.Flags().StringVarP(&historyDifficulty, "difficulty", "d", "", "only show games of this difficulty")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all stored games")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Store.Backend != config.BackendSQLite {
		return fmt.Errorf("history needs the sqlite store backend (configured: %s)", cfg.Store.Backend)
	}

	filter := domain.ListFilter{Limit: historyLimit}
	if historyDifficulty != "" {
		d, err := quiz.ParseDifficulty(historyDifficulty)
		if err != nil {
			return err
		}
		filter.Difficulty = d
	}

	db, err := sqlite.NewDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()
	repo := db.ResultRepository()

	out := cmd.OutOrStdout()
	if historyClear {
		if err := repo.DeleteAll(); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	}

	results, err := repo.List(filter)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No games played yet")
		return nil
	}
	fmt.Fprintln(out, renderHistory(results))
	return nil
}

func renderHistory(results []*domain.GameResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Finished", "Difficulty", "Score", "Avg time (s)")
	for _, r := range results {
		t.Row(
			r.FinishedAt().Local().Format("2006-01-02 15:04"),
			r.Difficulty().Label(),
			strconv.Itoa(r.Score())+"/"+strconv.Itoa(r.Total()),
			domain.FormatSeconds(r.AverageSeconds()),
		)
	}
	return t.Render()
}
