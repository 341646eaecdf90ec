// Package planner builds a dependency DAG of atomic client operations
// from high-level per-client workflows, and exposes every legal
// interleaving of that DAG via the underlying dag package.
package planner

import (
	"fmt"
	"sort"

	"github.com/escodb/mc2/internal/dag"
	"github.com/escodb/mc2/internal/dbpath"
)

// UpdateMode selects the shape of the DAG produced by Client.Update.
type UpdateMode int

const (
	// ReadsBeforeLinks forces every ancestor list and the document get
	// to complete before any link begins.
	ReadsBeforeLinks UpdateMode = iota
	// GetBeforePut only constrains the get to precede the put; it may
	// interleave freely with the ancestor list/link pairs.
	GetBeforePut
)

func (m UpdateMode) String() string {
	if m == GetBeforePut {
		return "get_before_put"
	}
	return "reads_before_links"
}

// RemoveMode selects the shape of the DAG produced by Client.Remove.
type RemoveMode int

const (
	// UnlinkSequential chains the ancestor unlinks deepest-first.
	UnlinkSequential RemoveMode = iota
	// UnlinkParallel lets every ancestor unlink depend only on the rm.
	UnlinkParallel
)

func (m RemoveMode) String() string {
	if m == UnlinkParallel {
		return "unlink_parallel"
	}
	return "unlink_sequential"
}

// Config bundles the two DAG-shape knobs the planner consumes.
type Config struct {
	UpdateMode UpdateMode
	RemoveMode RemoveMode
}

// UpdateFunc computes a document's new payload from its current one
// (nil if the document did not previously exist). It is total: the
// planner always writes its result, there is no "skip this write" case.
type UpdateFunc[T any] func(current *T) T

// OpKind discriminates the six atomic operations an actor can dispatch.
type OpKind int

const (
	OpGet OpKind = iota
	OpList
	OpPut
	OpRm
	OpLink
	OpUnlink
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "get"
	case OpList:
		return "list"
	case OpPut:
		return "put"
	case OpRm:
		return "rm"
	case OpLink:
		return "link"
	case OpUnlink:
		return "unlink"
	default:
		return "?"
	}
}

// Op is one atomic operation, tagged with any data it needs beyond its
// target path (the update closure for Put, the entry name for
// Link/Unlink).
type Op[T any] struct {
	Kind   OpKind
	Update UpdateFunc[T]
	Entry  string
}

// Act is a single operation tagged with the client that issues it — the
// unit of interleaving the planner's DAG enumerates orderings over.
type Act[T any] struct {
	ClientID string
	Path     dbpath.Path
	Op       Op[T]
}

// String renders an act the way a failing linearization is reported:
// "client: op('path'[, 'entry'])".
func (a Act[T]) String() string {
	switch a.Op.Kind {
	case OpLink, OpUnlink:
		return fmt.Sprintf("%s: %s('%s', '%s')", a.ClientID, a.Op.Kind, a.Path, a.Op.Entry)
	default:
		return fmt.Sprintf("%s: %s('%s')", a.ClientID, a.Op.Kind, a.Path)
	}
}

// Planner accumulates per-client workflows into one dependency DAG and
// enumerates the DAG's topological orderings.
type Planner[T any] struct {
	graph   *dag.Graph[Act[T]]
	cfg     Config
	clients map[string]struct{}
}

// New returns an empty planner governed by cfg.
func New[T any](cfg Config) *Planner[T] {
	return &Planner[T]{graph: dag.New[Act[T]](), cfg: cfg, clients: make(map[string]struct{})}
}

// Client returns a builder for the named client's workflow. Calling
// Client with the same id twice returns two independent builders that
// both register acts under that id — the planner never reuses state
// across them beyond the shared graph and client registry.
func (p *Planner[T]) Client(id string) *Client[T] {
	p.clients[id] = struct{}{}
	return &Client[T]{id: id, graph: p.graph, cfg: p.cfg}
}

// Clients returns every registered client id, sorted.
func (p *Planner[T]) Clients() []string {
	out := make([]string, 0, len(p.clients))
	for id := range p.clients {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Orderings returns every topological linearization of the planner's
// DAG, lazily and exactly once each.
func (p *Planner[T]) Orderings() func(func([]Act[T]) bool) {
	return p.graph.Orderings()
}

// Client builds one client's contribution to a Planner's DAG.
type Client[T any] struct {
	id    string
	graph *dag.Graph[Act[T]]
	cfg   Config
}

func (c *Client[T]) act(path dbpath.Path, op Op[T]) Act[T] {
	return Act[T]{ClientID: c.id, Path: path, Op: op}
}

// Get adds a raw get primitive depending on deps.
func (c *Client[T]) Get(path string, deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpGet}))
}

// List adds a raw list primitive depending on deps.
func (c *Client[T]) List(path string, deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpList}))
}

// Put adds a raw put primitive depending on deps.
func (c *Client[T]) Put(path string, update UpdateFunc[T], deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpPut, Update: update}))
}

// Rm adds a raw rm primitive depending on deps.
func (c *Client[T]) Rm(path string, deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpRm}))
}

// Link adds a raw link primitive depending on deps.
func (c *Client[T]) Link(path, entry string, deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpLink, Entry: entry}))
}

// Unlink adds a raw unlink primitive depending on deps.
func (c *Client[T]) Unlink(path, entry string, deps ...dag.NodeID) dag.NodeID {
	return c.graph.Add(deps, c.act(dbpath.MustNew(path), Op[T]{Kind: OpUnlink, Entry: entry}))
}

func (c *Client[T]) doReads(path dbpath.Path) []dag.NodeID {
	reads := make([]dag.NodeID, 0, len(path.Links())+1)
	for _, dir := range path.Dirs() {
		reads = append(reads, c.graph.Add(nil, c.act(dbpath.MustNew(dir), Op[T]{Kind: OpList})))
	}
	reads = append(reads, c.graph.Add(nil, c.act(path, Op[T]{Kind: OpGet})))
	return reads
}

// Update expands into one list per ancestor directory, one get, one
// link per ancestor, and one put — shaped by Config.UpdateMode.
func (c *Client[T]) Update(path string, update UpdateFunc[T]) {
	p := dbpath.MustNew(path)
	if c.cfg.UpdateMode == GetBeforePut {
		c.updateGetBeforePut(p, update)
	} else {
		c.updateReadsBeforeLinks(p, update)
	}
}

func (c *Client[T]) updateReadsBeforeLinks(path dbpath.Path, update UpdateFunc[T]) {
	reads := c.doReads(path)

	links := make([]dag.NodeID, 0, len(path.Links()))
	for _, l := range path.Links() {
		links = append(links, c.graph.Add(reads, c.act(dbpath.MustNew(l.Dir), Op[T]{Kind: OpLink, Entry: l.Entry})))
	}
	c.graph.Add(links, c.act(path, Op[T]{Kind: OpPut, Update: update}))
}

func (c *Client[T]) updateGetBeforePut(path dbpath.Path, update UpdateFunc[T]) {
	get := c.graph.Add(nil, c.act(path, Op[T]{Kind: OpGet}))
	deps := []dag.NodeID{get}

	for _, l := range path.Links() {
		list := c.graph.Add(nil, c.act(dbpath.MustNew(l.Dir), Op[T]{Kind: OpList}))
		link := c.graph.Add([]dag.NodeID{list}, c.act(dbpath.MustNew(l.Dir), Op[T]{Kind: OpLink, Entry: l.Entry}))
		deps = append(deps, link)
	}
	c.graph.Add(deps, c.act(path, Op[T]{Kind: OpPut, Update: update}))
}

// Remove expands into one list per ancestor directory, one get, one rm,
// and one unlink per ancestor — shaped by Config.RemoveMode.
func (c *Client[T]) Remove(path string) {
	p := dbpath.MustNew(path)
	if c.cfg.RemoveMode == UnlinkParallel {
		c.removeUnlinkParallel(p)
	} else {
		c.removeUnlinkSequential(p)
	}
}

func (c *Client[T]) removeUnlinkSequential(path dbpath.Path) {
	reads := c.doReads(path)
	op := c.graph.Add(reads, c.act(path, Op[T]{Kind: OpRm}))

	links := path.Links()
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		op = c.graph.Add([]dag.NodeID{op}, c.act(dbpath.MustNew(l.Dir), Op[T]{Kind: OpUnlink, Entry: l.Entry}))
	}
}

func (c *Client[T]) removeUnlinkParallel(path dbpath.Path) {
	reads := c.doReads(path)
	rm := c.graph.Add(reads, c.act(path, Op[T]{Kind: OpRm}))

	for _, l := range path.Links() {
		c.graph.Add([]dag.NodeID{rm}, c.act(dbpath.MustNew(l.Dir), Op[T]{Kind: OpUnlink, Entry: l.Entry}))
	}
}
