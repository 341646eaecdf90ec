package mc2

import (
	"testing"

	"github.com/escodb/mc2/internal/planner"
)

func TestRunPassesEveryLinearizationOfASingleClientUpdate(t *testing.T) {
	result := Run(Scenario[rune]{
		Name:   "single-client-update",
		Config: NewConfig(),
		Workflow: func(p *planner.Planner[rune]) {
			p.Client("A").Update("/path/to/x", func(_ *rune) rune { return 'a' })
		},
	})

	if !result.OK() {
		t.Fatalf("expected no violations, got %v (at %v)", result.Violations, result.FailingOrdering)
	}
	if result.OrderingsChecked != 144 {
		t.Fatalf("orderings checked = %d, want 144", result.OrderingsChecked)
	}
}

func TestRunConcurrentUpdatePassesEveryLinearization(t *testing.T) {
	result := Run(Scenario[rune]{
		Name:   "two-client-concurrent-update",
		Config: NewConfig(),
		Workflow: func(p *planner.Planner[rune]) {
			p.Client("A").Update("/x", func(_ *rune) rune { return 'a' })
			p.Client("B").Update("/x", func(_ *rune) rune { return 'b' })
		},
	})

	if !result.OK() {
		t.Fatalf("expected no violations, got %v", result.Violations)
	}
}

func TestRunUpdateVersusRemoveNeverProducesALinkDataMismatch(t *testing.T) {
	result := Run(Scenario[rune]{
		Name:   "update-versus-remove",
		Config: NewConfig(),
		Workflow: func(p *planner.Planner[rune]) {
			p.Client("A").Update("/x", func(_ *rune) rune { return 'a' })
			p.Client("B").Remove("/x")
		},
	})

	if !result.OK() {
		t.Fatalf("expected no violations under default Config, got %v", result.Violations)
	}
}

func TestRunFailsUnderLaxCasModeOnUpdateVersusRemove(t *testing.T) {
	result := Run(Scenario[rune]{
		Name:   "update-versus-remove-lax",
		Config: NewConfig(WithCasMode(Lax)),
		Setup: func(p *planner.Planner[rune]) {
			p.Client("seed").Update("/x", func(_ *rune) rune { return 'a' })
		},
		Workflow: func(p *planner.Planner[rune]) {
			p.Client("A").Update("/x", func(_ *rune) rune { return 'a' })
			p.Client("B").Remove("/x")
		},
	})

	if result.OK() {
		t.Fatalf("expected at least one violation under cas_mode=Lax update-vs-remove")
	}
}

func TestRunSeedsBaselineFromFirstOrderingOfSetupOnly(t *testing.T) {
	result := Run(Scenario[rune]{
		Name:   "directory-reconstruction",
		Config: NewConfig(),
		Setup: func(p *planner.Planner[rune]) {
			p.Client("seed").Update("/path/to/x", func(_ *rune) rune { return 'a' })
		},
		Workflow: func(p *planner.Planner[rune]) {
			p.Client("A").Remove("/path/")
		},
	})

	// Removing the intermediate directory orphans /path/to/x; the
	// checker must report it exactly once, through the document, not
	// once per orphaned directory level.
	if result.OK() {
		t.Fatalf("expected removing an intermediate directory to orphan the document beneath it")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", result.Violations)
	}
}
