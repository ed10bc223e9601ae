package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed rules.md
var rulesMarkdown string

var rulesWidth int

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Explain how to play",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderRules(rulesWidth, glamour.WithAutoStyle())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rulesCmd.Flags().IntVarP(&rulesWidth, "width", "w", 80, "wrap width")
	rootCmd.AddCommand(rulesCmd)
}

func renderRules(width int, style glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(rulesMarkdown)
	if err != nil {
		return "", fmt.Errorf("rendering rules: %w", err)
	}
	return out, nil
}
