// Package dag builds dependency graphs of opaque values and exhaustively
// enumerates their topological orderings as a lazy, pull-based sequence.
package dag

import "iter"

// NodeID identifies a node within a single Graph.
type NodeID int

type node[T any] struct {
	deps  []NodeID
	value T
}

// Graph is a dependency DAG over values of type T. Nodes are added with
// Add and carry their dependency edges explicitly; Add does not reject
// an edge that closes a cycle — a caller that builds one has a bug, and
// Orderings panics when it reaches nodes that can never become ready.
type Graph[T any] struct {
	nodes []node[T]
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{}
}

// Add registers value with the given dependencies and returns its id.
// deps must reference ids already returned by Add on this graph.
func (g *Graph[T]) Add(deps []NodeID, value T) NodeID {
	id := NodeID(len(g.nodes))
	cp := append([]NodeID(nil), deps...)
	g.nodes = append(g.nodes, node[T]{deps: cp, value: value})
	return id
}

// Orderings returns every topological linearization of the graph exactly
// once, as a lazy sequence. Enumeration is iterative (an explicit stack,
// not recursion) per node count, and deterministic: among several nodes
// ready at the same point, the lowest-id one is tried first.
func (g *Graph[T]) Orderings() iter.Seq[[]T] {
	n := len(g.nodes)
	deps := make([][]NodeID, n)
	for i, node := range g.nodes {
		deps[i] = node.deps
	}

	return func(yield func([]T) bool) {
		if n == 0 {
			yield(nil)
			return
		}

		indegree := make([]int, n)
		dependents := make([][]int, n)
		for i, d := range deps {
			indegree[i] = len(d)
			for _, dep := range d {
				dependents[dep] = append(dependents[dep], i)
			}
		}

		emitted := make([]bool, n)
		path := make([]NodeID, 0, n)

		ready := func() []NodeID {
			var r []NodeID
			for i := 0; i < n; i++ {
				if !emitted[i] && indegree[i] == 0 {
					r = append(r, NodeID(i))
				}
			}
			return r
		}

		choose := func(id NodeID) {
			emitted[id] = true
			path = append(path, id)
			for _, dep := range dependents[id] {
				indegree[dep]--
			}
		}

		unchoose := func(id NodeID) {
			for _, dep := range dependents[id] {
				indegree[dep]++
			}
			emitted[id] = false
			path = path[:len(path)-1]
		}

		type frame struct {
			candidates []NodeID
			pos        int
		}

		next := func() frame {
			r := ready()
			if len(r) == 0 {
				panic("dag: graph has a cycle")
			}
			return frame{candidates: r}
		}

		stack := []frame{next()}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.pos >= len(top.candidates) {
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					parent := &stack[len(stack)-1]
					unchoose(parent.candidates[parent.pos])
					parent.pos++
				}
				continue
			}

			id := top.candidates[top.pos]
			choose(id)

			if len(path) == n {
				values := make([]T, n)
				for i, nodeID := range path {
					values[i] = g.nodes[nodeID].value
				}
				cont := yield(values)
				unchoose(id)
				top.pos++
				if !cont {
					return
				}
				continue
			}

			stack = append(stack, next())
		}
	}
}
