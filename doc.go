// Package mc2 is a model checker for a hierarchical, compare-and-swap
// backed document/directory store. It exhaustively enumerates every
// interleaving of a multi-client workload and re-validates a
// link-closure invariant after each step, so that client-side
// disciplines (operation ordering, write-elision, CAS semantics) can be
// shown necessary or sufficient by exhibiting a failing interleaving.
//
// # Overview
//
// A workload is described through a Planner: each client registers a
// high-level workflow (Update or Remove a path, or raw get/list/put/
// link/unlink primitives), and the planner expands that into a
// dependency DAG of atomic Acts. An Executor runs the workload once per
// topological ordering of that DAG, dispatching each Act through a
// fresh per-client Actor against a fresh Store, checking the invariant
// after every step, and stopping at the first violation.
//
// # Data model
//
// Keys are hierarchical paths. A document's parent chain must, after
// every accepted operation, resolve to existing directories that list
// it by name; internal/checker verifies this by scanning live document
// entries, not live directory entries, so an orphaned intermediate
// directory is reported once, through the document beneath it.
//
// # Generics
//
// Every component is generic over the document payload type. The
// payload only needs to be cheaply cloneable.
//
// # Concurrency model
//
// All "concurrency" is simulated by enumeration: at runtime only one
// Act executes at a time against a shared Store, and no interleaving
// shares state with another. This gives exhaustive coverage of orderings
// without introducing nondeterminism into the checker itself.
//
// Example
//
//	result := mc2.Run(mc2.Scenario[rune]{
//		Name:   "single-client-update",
//		Config: mc2.NewConfig(mc2.WithCasMode(mc2.Strict)),
//		Workflow: func(p *planner.Planner[rune]) {
//			p.Client("A").Update("/path/to/x", func(_ *rune) rune { return 'a' })
//		},
//	})
//	if !result.OK() {
//		// inspect result.FailingOrdering and result.Violations
//	}
package mc2
