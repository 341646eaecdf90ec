// Command mc2 runs the built-in scenario catalog against every Config
// permutation and reports any consistency violation it finds.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/escodb/mc2"
	"github.com/escodb/mc2/internal/scenarios"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("mc2: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var quiet, failFast bool

	cmd := &cobra.Command{
		Use:   "mc2",
		Short: "Check the hierarchical CAS-store consistency invariant across every built-in scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(quiet, failFast)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the ok line (and its ordering count) for each passing run")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop the whole catalog at the first violation")
	return cmd
}

func runCatalog(quiet, failFast bool) error {
	failures := 0

	for _, cfg := range scenarios.ConfigMatrix() {
		for _, name := range scenarios.Names() {
			result := mc2.Run(scenarios.Build(name, cfg))

			if result.OK() {
				if !quiet {
					fmt.Printf("ok   %-28s %+v (%d orderings)\n", name, cfg, result.OrderingsChecked)
				}
				continue
			}

			failures++
			reportFailure(name, result)
			if failFast {
				return fmt.Errorf("stopped after first violation (--fail-fast)")
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d scenario/config combination(s) violated the link-closure invariant", failures)
	}
	fmt.Println("all scenarios verified")
	return nil
}

func reportFailure[T any](name string, result mc2.Result[T]) {
	fmt.Printf("FAIL %-28s %+v  run=%s\n", name, result.Config, result.RunID)
	fmt.Printf("  failing ordering (first %d of %d acts):\n", result.FailingPrefixLen, len(result.FailingOrdering))
	for i, act := range result.FailingOrdering[:result.FailingPrefixLen] {
		fmt.Printf("    %2d. %s\n", i+1, act)
	}
	fmt.Println("  violations:")
	for _, v := range result.Violations {
		fmt.Printf("    - %s\n", v)
	}
	fmt.Println("  final store snapshot:")
	for _, e := range result.Snapshot {
		if e.Value == nil {
			fmt.Printf("    %s -> (%d, tombstoned)\n", e.Key, e.Rev)
		} else {
			fmt.Printf("    %s -> (%d, %v)\n", e.Key, e.Rev, e.Value)
		}
	}
}
