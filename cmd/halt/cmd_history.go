package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"haltbench/internal/config"
	"haltbench/internal/report"
	"haltbench/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect archived benchmark runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openHistory()
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		fmt.Printf("  %-36s  %-16s  %-9s  %-8s  %6s  %-5s\n",
			"RUN", "DATE", "PROVIDER", "MODE", "SCORE", "GRADE")
		for _, run := range runs {
			fmt.Printf("  %-36s  %-16s  %-9s  %-8s  %6.1f  %-5s\n",
				run.RunID,
				run.Timestamp.Format("2006-01-02 15:04"),
				run.Provider, run.Mode, run.FinalScore, run.Grade)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the full archived results of a run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openHistory()
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.GetResults(args[0])
		if err != nil {
			return err
		}
		out, err := report.JSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare <run-a> <run-b>",
	Short: "Compare two archived runs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openHistory()
		if err != nil {
			return err
		}
		defer s.Close()

		cmpRes, err := s.Compare(args[0], args[1])
		if err != nil {
			return err
		}

		sign := "+"
		if cmpRes.Delta < 0 {
			sign = ""
		}
		fmt.Printf("  %s  %s  %.1f (%s)\n", cmpRes.A.RunID, cmpRes.A.Provider, cmpRes.A.FinalScore, cmpRes.A.Grade)
		fmt.Printf("  %s  %s  %.1f (%s)\n", cmpRes.B.RunID, cmpRes.B.Provider, cmpRes.B.FinalScore, cmpRes.B.Grade)
		fmt.Printf("  delta: %s%.1f\n", sign, cmpRes.Delta)
		return nil
	},
}

func openHistory() (*store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.History.Path)
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCompareCmd)
}
