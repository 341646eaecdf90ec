package mc2

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/escodb/mc2/internal/actor"
	"github.com/escodb/mc2/internal/checker"
	"github.com/escodb/mc2/internal/planner"
	"github.com/escodb/mc2/internal/store"
)

// Workflow builds one scenario's plan against a fresh Planner.
type Workflow[T any] func(p *planner.Planner[T])

// Scenario bundles a name, a Config, an optional Setup workflow used to
// seed a baseline store, and the main Workflow whose linearizations are
// actually checked.
type Scenario[T any] struct {
	Name     string
	Config   Config
	Setup    Workflow[T]
	Workflow Workflow[T]
}

// Result reports the outcome of running one Scenario under one Config.
type Result[T any] struct {
	RunID            uuid.UUID
	Scenario         string
	Config           Config
	OrderingsChecked int
	FailingOrdering  []planner.Act[T]
	FailingPrefixLen int
	Violations       []string
	Snapshot         []store.SnapshotEntry[T]
}

// OK reports whether every linearization of the scenario's workflow
// passed the checker.
func (r Result[T]) OK() bool { return len(r.Violations) == 0 }

// Run builds a scenario's planner-level workload, seeds a baseline
// store from the first ordering of Setup (if any), then checks every
// linearization of Workflow against that baseline, stopping at the
// first violation. It never shares store or actor state between
// linearizations.
func Run[T any](scn Scenario[T]) Result[T] {
	result := Result[T]{RunID: uuid.New(), Scenario: scn.Name, Config: scn.Config}

	baseline := store.New[T](scn.Config.CasMode)
	if scn.Setup != nil {
		seedClients(baseline, scn.Config, scn.Setup)
	}

	p := planner.New[T](planner.Config{UpdateMode: scn.Config.UpdateMode, RemoveMode: scn.Config.RemoveMode})
	scn.Workflow(p)
	clients := p.Clients()

	for ordering := range p.Orderings() {
		result.OrderingsChecked++

		st := baseline.Clone()
		actors := newActors[T](clients, st, scn.Config.SkipLinks)
		chk := checker.New[T](st)

		prefixLen := 0
		var violations []string
		for _, act := range ordering {
			a, ok := actors[act.ClientID]
			if !ok {
				panic(fmt.Errorf("%w: %q", ErrUnknownClient, act.ClientID))
			}
			a.Dispatch(act)
			prefixLen++

			if v := chk.Check(); v != nil {
				violations = v
				break
			}
		}

		if violations != nil {
			result.FailingOrdering = ordering
			result.FailingPrefixLen = prefixLen
			result.Violations = violations
			result.Snapshot = st.Snapshot()
			return result
		}
	}

	return result
}

// seedClients dispatches only the first ordering of a setup workflow
// directly onto baseline, since a single init workflow has no real
// concurrency worth exploring — it exists only to put the store in a
// known starting state.
func seedClients[T any](baseline *store.Store[T], cfg Config, setup Workflow[T]) {
	p := planner.New[T](planner.Config{UpdateMode: cfg.UpdateMode, RemoveMode: cfg.RemoveMode})
	setup(p)

	actors := newActors[T](p.Clients(), baseline, cfg.SkipLinks)
	for ordering := range p.Orderings() {
		for _, act := range ordering {
			actors[act.ClientID].Dispatch(act)
		}
		return
	}
}

func newActors[T any](clients []string, st *store.Store[T], skipLinks bool) map[string]*actor.Actor[T] {
	actors := make(map[string]*actor.Actor[T], len(clients))
	for _, id := range clients {
		actors[id] = actor.New[T](id, st, skipLinks)
	}
	return actors
}
