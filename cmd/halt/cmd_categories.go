package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"haltbench/internal/types"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the benchmark categories and their weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		header := lipgloss.NewStyle().Bold(true)
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		fmt.Println(header.Render("  CODE      WEIGHT  CATEGORY"))
		for _, cat := range types.AllCategories() {
			fmt.Printf("  %-8s  %5.0f%%  %s\n",
				cat, cat.Weight()*100, cat.DisplayName())
		}
		fmt.Println(muted.Render("\n  Weights sum to 100% and set each category's share of the final score."))
		return nil
	},
}
