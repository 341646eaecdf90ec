package planner_test

import (
	"testing"

	"github.com/escodb/mc2/internal/actor"
	"github.com/escodb/mc2/internal/dbpath"
	. "github.com/escodb/mc2/internal/planner"
	"github.com/escodb/mc2/internal/store"
)

func TestClientsReturnsRegisteredIDsSorted(t *testing.T) {
	p := New[rune](Config{})
	p.Client("bob").Remove("/y")
	p.Client("alice").Update("/x", func(_ *rune) rune { return 'x' })

	got := p.Clients()
	if len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Fatalf("clients = %v, want [alice bob]", got)
	}
}

func firstOrdering[T any](p *Planner[T]) []Act[T] {
	for ordering := range p.Orderings() {
		return ordering
	}
	return nil
}

func TestUpdateProducesInstructionsToCreateADocument(t *testing.T) {
	p := New[[]rune](Config{})
	p.Client("A").Update("/path/x.json", func(_ *[]rune) []rune { return []rune{'a'} })

	s := store.New[[]rune](store.Strict)
	a := actor.New[[]rune]("A", s, false)
	for _, act := range firstOrdering(p) {
		a.Dispatch(act)
	}

	if rev, val, ok := s.Read("/"); !ok || rev != 1 || val.SortedEntries()[0] != "path/" {
		t.Fatalf("/ = (%d, %v, %v)", rev, val, ok)
	}
	if rev, val, ok := s.Read("/path/"); !ok || rev != 1 || val.SortedEntries()[0] != "x.json" {
		t.Fatalf("/path/ = (%d, %v, %v)", rev, val, ok)
	}
	if rev, val, ok := s.Read("/path/x.json"); !ok || rev != 1 || val.Doc[0] != 'a' {
		t.Fatalf("/path/x.json = (%d, %v, %v)", rev, val, ok)
	}
}

func TestUpdateReadsBeforeLinksRequiresAllReadsBeforeAnyLink(t *testing.T) {
	p := New[rune](Config{UpdateMode: ReadsBeforeLinks})
	p.Client("A").Update("/path/to/x", func(_ *rune) rune { return 'a' })

	count := 0
	for ordering := range p.Orderings() {
		count++
		linkSeen := false
		for _, act := range ordering {
			if act.Op.Kind == OpLink {
				linkSeen = true
			} else if act.Op.Kind == OpGet || act.Op.Kind == OpList {
				if linkSeen {
					t.Fatalf("a read appears after a link in ReadsBeforeLinks mode: %v", ordering)
				}
			}
		}
	}
	// 4 independent reads (3 lists + 1 get), then 3 independent links, then put.
	if count != 144 {
		t.Fatalf("orderings = %d, want 144", count)
	}
}

func TestUpdateGetBeforePutAllowsGetToInterleaveWithLinks(t *testing.T) {
	p := New[rune](Config{UpdateMode: GetBeforePut})
	p.Client("A").Update("/x", func(_ *rune) rune { return 'a' })

	sawGetAfterLink := false
	for ordering := range p.Orderings() {
		linkSeen := false
		for _, act := range ordering {
			if act.Op.Kind == OpLink {
				linkSeen = true
			}
			if act.Op.Kind == OpGet && linkSeen {
				sawGetAfterLink = true
			}
		}
	}
	if !sawGetAfterLink {
		t.Fatalf("expected at least one ordering where get follows a link")
	}
}

func TestRemoveUnlinkSequentialChainsDeepestFirst(t *testing.T) {
	p := New[rune](Config{RemoveMode: UnlinkSequential})
	p.Client("A").Remove("/path/to/x")

	for ordering := range p.Orderings() {
		var positions []string
		for _, act := range ordering {
			if act.Op.Kind == OpUnlink {
				positions = append(positions, act.Path.String())
			}
		}
		want := []string{"/path/to/", "/path/", "/"}
		if len(positions) != len(want) {
			t.Fatalf("unlinks = %v, want %v", positions, want)
		}
		for i := range want {
			if positions[i] != want[i] {
				t.Fatalf("unlinks = %v, want %v", positions, want)
			}
		}
	}
}

func TestRemoveUnlinkParallelOnlyDependsOnRm(t *testing.T) {
	p := New[rune](Config{RemoveMode: UnlinkParallel})
	p.Client("A").Remove("/path/to/x")

	sawUnlinkBeforeOtherUnlink := false
	for ordering := range p.Orderings() {
		rmIdx := -1
		for i, act := range ordering {
			if act.Op.Kind == OpRm {
				rmIdx = i
			}
			if act.Op.Kind == OpUnlink && rmIdx == -1 {
				t.Fatalf("unlink scheduled before rm: %v", ordering)
			}
		}
		var unlinkDirs []string
		for _, act := range ordering {
			if act.Op.Kind == OpUnlink {
				unlinkDirs = append(unlinkDirs, act.Path.String())
			}
		}
		if len(unlinkDirs) == 3 && unlinkDirs[0] != "/path/to/" {
			sawUnlinkBeforeOtherUnlink = true
		}
	}
	if !sawUnlinkBeforeOtherUnlink {
		t.Fatalf("expected some ordering where unlinks are not forced deepest-first")
	}
}

func TestRawPrimitivesComposeAnArbitraryDag(t *testing.T) {
	p := New[rune](Config{})
	c := p.Client("A")

	get := c.Get("/x")
	put := c.Put("/x", func(_ *rune) rune { return 'a' }, get)
	_ = put

	count := 0
	for range p.Orderings() {
		count++
	}
	if count != 1 {
		t.Fatalf("orderings = %d, want 1", count)
	}
}

func TestActStringRendersClientOpPath(t *testing.T) {
	act := Act[rune]{ClientID: "A", Path: dbpath.MustNew("/x"), Op: Op[rune]{Kind: OpLink, Entry: "x"}}
	want := "A: link('/x', 'x')"
	if got := act.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
