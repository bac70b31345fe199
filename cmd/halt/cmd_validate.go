package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"haltbench/internal/config"
	"haltbench/internal/dataset"
	"haltbench/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and dataset",
	Long: `Loads the configuration and every test item, checks them for
duplicate ids, empty prompts, and unknown categories or expectation
kinds, and prints the per-category item counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		fmt.Println("✓ Configuration is valid")

		categories, err := cfg.ParsedCategories()
		if err != nil {
			return err
		}

		loader := dataset.NewLoader(cfg.DatasetPath, logger)
		items, err := loader.Load(categories, cfg.LiteMode)
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		if err := dataset.Validate(items); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}

		counts := make(map[types.Category]int)
		for _, item := range items {
			counts[item.Category]++
		}
		for _, cat := range types.AllCategories() {
			if n := counts[cat]; n > 0 {
				fmt.Printf("  %-8s %3d items\n", cat, n)
			}
		}
		fmt.Printf("✓ %d test items are valid\n", len(items))
		return nil
	},
}
