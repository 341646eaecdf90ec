// Package checker validates the hierarchical link-closure invariant
// against a store: every live document's ancestor directories must
// exist and must list it.
package checker

import (
	"fmt"

	"github.com/escodb/mc2/internal/dbpath"
	"github.com/escodb/mc2/internal/store"
)

// Checker re-validates a store's link closure, skipping the scan when
// nothing has changed since the last check.
type Checker[T any] struct {
	store       *store.Store[T]
	checkedAt   int
	initialized bool
}

// New returns a checker bound to st. Its first Check always scans.
func New[T any](st *store.Store[T]) *Checker[T] {
	return &Checker[T]{store: st}
}

// Check scans the store for link-closure violations, unless the
// store's mutation epoch has not advanced since the last scan. It
// returns every violation message, nil meaning the invariant holds (or
// the check was skipped because nothing changed; a skipped check
// returns nil even when the previous scan found violations).
//
// Violations are scanned over documents only: a directory entry that
// has itself gone missing from its own parent is reported through the
// documents beneath it, not as a separate violation for the directory
// itself.
func (c *Checker[T]) Check() []string {
	epoch := c.store.Epoch()
	if c.initialized && epoch == c.checkedAt {
		return nil
	}

	var violations []string
	for _, e := range c.store.Entries() {
		if e.Value.Kind != store.KindDoc {
			continue
		}
		violations = append(violations, c.checkLinks(e.Key)...)
	}

	c.checkedAt = epoch
	c.initialized = true
	return violations
}

func (c *Checker[T]) checkLinks(key string) []string {
	path := dbpath.MustNew(key)

	var violations []string
	for _, link := range path.Links() {
		val, tombstoned, present := c.store.RawGet(link.Dir)
		if !present || tombstoned || val.Kind != store.KindDir {
			violations = append(violations, fmt.Sprintf(
				"dir '%s', required by doc '%s', is missing", link.Dir, key))
			continue
		}
		if _, has := val.Entries[link.Entry]; !has {
			violations = append(violations, fmt.Sprintf(
				"dir '%s' does not include name '%s', required by doc '%s'",
				link.Dir, link.Entry, key))
		}
	}
	return violations
}
