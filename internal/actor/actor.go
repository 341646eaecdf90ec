// Package actor implements the per-client mediator between a workflow's
// planned acts and the shared store: it caches each key's last-observed
// (version, value) and turns any rejected write into a latched,
// permanently-quiet failure for the rest of the client's run.
package actor

import (
	"github.com/escodb/mc2/internal/dbpath"
	"github.com/escodb/mc2/internal/planner"
	"github.com/escodb/mc2/internal/store"
)

type shadow[T any] struct {
	observed bool
	rev      int
	val      *store.Value[T] // nil means tombstoned (only meaningful if observed)
}

// Actor dispatches one client's acts against a shared store, tracking
// that client's shadow view and conflicted state.
type Actor[T any] struct {
	id         string
	store      *store.Store[T]
	skipLinks  bool
	shadow     map[string]*shadow[T]
	conflicted bool
}

// New returns an actor for client id writing through to st.
func New[T any](id string, st *store.Store[T], skipLinks bool) *Actor[T] {
	return &Actor[T]{id: id, store: st, skipLinks: skipLinks, shadow: make(map[string]*shadow[T])}
}

// Conflicted reports whether a prior rejected write has latched this
// actor into permanent no-op mode.
func (a *Actor[T]) Conflicted() bool { return a.conflicted }

// Dispatch runs one act against the store, provided it targets this
// actor's client id.
func (a *Actor[T]) Dispatch(act planner.Act[T]) {
	if act.ClientID != a.id {
		return
	}
	switch act.Op.Kind {
	case planner.OpGet:
		a.Get(act.Path)
	case planner.OpList:
		a.List(act.Path)
	case planner.OpPut:
		a.Put(act.Path, act.Op.Update)
	case planner.OpRm:
		a.Rm(act.Path)
	case planner.OpLink:
		a.Link(act.Path, act.Op.Entry)
	case planner.OpUnlink:
		a.Unlink(act.Path, act.Op.Entry)
	}
}

func docFromShadow[T any](s *shadow[T]) *T {
	if s == nil || !s.observed || s.val == nil || s.val.Kind != store.KindDoc {
		return nil
	}
	v := s.val.Doc
	return &v
}

func dirFromShadow[T any](s *shadow[T]) (map[string]struct{}, bool) {
	if s == nil || !s.observed || s.val == nil || s.val.Kind != store.KindDir {
		return nil, false
	}
	out := make(map[string]struct{}, len(s.val.Entries))
	for e := range s.val.Entries {
		out[e] = struct{}{}
	}
	return out, true
}

func (a *Actor[T]) refresh(path dbpath.Path) *shadow[T] {
	rev, val, ok := a.store.Read(path.String())
	s := &shadow[T]{observed: ok, rev: rev, val: val}
	a.shadow[path.String()] = s
	return s
}

// Get performs a store-read of path, refreshing the shadow, and returns
// the document payload (nil if absent, tombstoned, or a directory).
func (a *Actor[T]) Get(path dbpath.Path) *T {
	if a.conflicted {
		return docFromShadow(a.shadow[path.String()])
	}
	return docFromShadow(a.refresh(path))
}

// List performs a store-read of path, refreshing the shadow, and returns
// a clone of the directory's entry set (ok=false if absent, tombstoned,
// or a document).
func (a *Actor[T]) List(path dbpath.Path) (map[string]struct{}, bool) {
	if a.conflicted {
		return dirFromShadow(a.shadow[path.String()])
	}
	return dirFromShadow(a.refresh(path))
}

func (a *Actor[T]) expectedRev(path dbpath.Path) *int {
	s, ok := a.shadow[path.String()]
	if !ok || !s.observed {
		return nil
	}
	rev := s.rev
	return &rev
}

func (a *Actor[T]) write(path dbpath.Path, val store.Value[T]) {
	expected := a.expectedRev(path)
	newRev, ok := a.store.Write(path.String(), expected, val)
	if !ok {
		a.conflicted = true
		return
	}
	clone := val.Clone()
	a.shadow[path.String()] = &shadow[T]{observed: true, rev: newRev, val: &clone}
}

// Put computes the document's new payload from its current
// shadow-cached value (not a fresh read) and writes it unconditionally.
// On rejection the actor latches conflicted.
func (a *Actor[T]) Put(path dbpath.Path, update planner.UpdateFunc[T]) {
	if a.conflicted {
		return
	}
	current := docFromShadow(a.shadow[path.String()])
	a.write(path, store.NewDoc(update(current)))
}

// Rm issues a CAS remove using the shadow-cached revision. On rejection
// the actor latches conflicted; on acceptance the shadow advances to the
// resulting tombstone.
func (a *Actor[T]) Rm(path dbpath.Path) {
	if a.conflicted {
		return
	}
	expected := a.expectedRev(path)
	newRev, ok := a.store.Remove(path.String(), expected)
	if !ok {
		a.conflicted = true
		return
	}
	a.shadow[path.String()] = &shadow[T]{observed: true, rev: newRev, val: nil}
}

func (a *Actor[T]) currentEntries(path dbpath.Path) map[string]struct{} {
	entries, ok := dirFromShadow[T](a.shadow[path.String()])
	if !ok {
		return make(map[string]struct{})
	}
	return entries
}

// Link adds entry to path's directory, reading the current set from the
// shadow (not the store). When SkipLinks is set and the entry is
// already present, it succeeds silently without touching the store.
func (a *Actor[T]) Link(path dbpath.Path, entry string) {
	if a.conflicted {
		return
	}
	entries := a.currentEntries(path)
	if a.skipLinks {
		if _, has := entries[entry]; has {
			return
		}
	}
	entries[entry] = struct{}{}
	a.write(path, store.NewDirFromSet[T](entries))
}

// Unlink removes entry from path's directory unconditionally — it
// always writes, even if entry was not present, modeling "touch"
// semantics that are never elided by SkipLinks.
func (a *Actor[T]) Unlink(path dbpath.Path, entry string) {
	if a.conflicted {
		return
	}
	entries := a.currentEntries(path)
	delete(entries, entry)
	a.write(path, store.NewDirFromSet[T](entries))
}
