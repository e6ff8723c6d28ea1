// ABOUTME: Command-line benchmark runner for ranking quality scenarios
// ABOUTME: Executes the built-in suite offline and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adapta/recommender/benchmarks/ranking"
)

func main() {
	scenarioID := flag.String("scenario", "", "Run a specific scenario by ID. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	scenarios := ranking.BuiltinScenarios()
	if *scenarioID != "" {
		var selected []ranking.Scenario
		for _, s := range scenarios {
			if s.ID == *scenarioID {
				selected = append(selected, s)
			}
		}
		if len(selected) == 0 {
			log.Fatalf("Unknown scenario ID: %s", *scenarioID)
		}
		scenarios = selected
	}

	fmt.Println("========================================")
	fmt.Println("Recommender Ranking Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner := ranking.NewRunner(os.Stdout, *verbose)
	results := runner.RunAll(context.Background(), scenarios)

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	failed := 0
	for _, result := range results {
		if !result.Passed {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
