package graph

import (
	"bytes"
	"fmt"
	"sort"
)

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	NodeID  NodeID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// report collects findings from the validators.
type report []ValidationError

func (r *report) add(sev ValidationSeverity, id NodeID, format string, args ...any) {
	*r = append(*r, ValidationError{NodeID: id, Message: fmt.Sprintf(format, args...), Severity: sev})
}

func (r *report) errorf(id NodeID, format string, args ...any) {
	r.add(SeverityError, id, format, args...)
}

func (r *report) warnf(id NodeID, format string, args ...any) {
	r.add(SeverityWarning, id, format, args...)
}

// sortedNodes returns the graph's nodes ordered by ID so findings come out
// in the same order on every run.
func sortedNodes(g *SceneGraph) []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return bytes.Compare(nodes[i].ID[:], nodes[j].ID[:]) < 0
	})
	return nodes
}

// Validate runs the structural checks on the scene graph. An empty result
// means the graph is well formed; warnings are included with
// SeverityWarning. The graph is never mutated.
func Validate(g *SceneGraph) []ValidationError {
	var r report
	nodes := sortedNodes(g)
	checkAcyclic(g, nodes, &r)
	checkReferences(g, nodes, &r)
	checkNames(g, nodes, &r)
	checkRoots(g, nodes, &r)
	checkOperands(nodes, &r)
	checkTessellate(g, nodes, &r)
	return r
}

// ValidateAll runs the structural and geometric tiers and splits the
// findings into blocking errors and advisory warnings.
func ValidateAll(g *SceneGraph) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(g) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{NodeID: e.NodeID, Message: e.Message})
			continue
		}
		result.Errors = append(result.Errors, e)
	}

	geoErrs, geoWarnings := validateGeometry(g)
	result.Errors = append(result.Errors, geoErrs...)
	result.Warnings = append(result.Warnings, geoWarnings...)
	return result
}

// checkAcyclic reports the first cycle found by a depth-first search that
// marks nodes as unvisited, on the current path, or finished.
func checkAcyclic(g *SceneGraph, nodes []*Node, r *report) {
	const (
		unvisited = iota
		onPath
		finished
	)
	state := make(map[NodeID]int, len(nodes))

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch state[id] {
		case finished:
			return false
		case onPath:
			r.errorf(id, "cycle detected: node %s is part of a cycle", id.Short())
			return true
		}
		state[id] = onPath
		if n := g.Nodes[id]; n != nil {
			for _, c := range n.Children {
				if visit(c) {
					return true
				}
			}
		}
		state[id] = finished
		return false
	}

	for _, n := range nodes {
		if state[n.ID] == unvisited && visit(n.ID) {
			return
		}
	}
}

// checkReferences reports child IDs with no node behind them.
func checkReferences(g *SceneGraph, nodes []*Node, r *report) {
	for _, n := range nodes {
		for _, c := range n.Children {
			if g.Nodes[c] == nil {
				r.errorf(n.ID, "child reference %s does not exist", c.Short())
			}
		}
	}
}

// checkNames requires the name index to point at real nodes and every name
// to belong to one node.
func checkNames(g *SceneGraph, nodes []*Node, r *report) {
	names := make([]string, 0, len(g.NameIndex))
	for name := range g.NameIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if id := g.NameIndex[name]; g.Nodes[id] == nil {
			r.errorf(ZeroID, "name index entry %q references non-existent node %s", name, id.Short())
		}
	}

	count := make(map[string]int)
	var order []string
	for _, n := range nodes {
		if n.Name == "" {
			continue
		}
		if count[n.Name] == 0 {
			order = append(order, n.Name)
		}
		count[n.Name]++
	}
	for _, name := range order {
		if count[name] > 1 {
			r.errorf(ZeroID, "duplicate name %q assigned to %d nodes", name, count[name])
		}
	}
}

// checkRoots reports missing roots and warns about nodes no root reaches.
func checkRoots(g *SceneGraph, nodes []*Node, r *report) {
	for _, id := range g.Roots {
		if g.Nodes[id] == nil {
			r.errorf(ZeroID, "root reference %s does not exist", id.Short())
		}
	}

	reachable := reachableFrom(g, g.Roots)
	for _, n := range nodes {
		if reachable[n.ID] {
			continue
		}
		name := n.Name
		if name == "" {
			name = n.ID.Short()
		}
		r.warnf(n.ID, "node %q is not reachable from any root (orphan)", name)
	}
}

// reachableFrom returns every node reachable from start through child
// edges, start included.
func reachableFrom(g *SceneGraph, start []NodeID) map[NodeID]bool {
	seen := make(map[NodeID]bool)
	stack := make([]NodeID, 0, len(start))
	for _, id := range start {
		if g.Nodes[id] != nil && !seen[id] {
			seen[id] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.Nodes[id].Children {
			if g.Nodes[c] != nil && !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return seen
}

// checkOperands checks child counts against what each node kind needs.
func checkOperands(nodes []*Node, r *report) {
	for _, n := range nodes {
		count := len(n.Children)
		switch n.Kind {
		case NodePrimitive:
			if count != 0 {
				r.errorf(n.ID, "primitive has %d children, want 0", count)
			}
		case NodeTransform:
			if count != 1 {
				r.errorf(n.ID, "transform has %d children, want 1", count)
			}
		case NodeBoolean:
			bd, ok := n.Data.(BooleanData)
			switch {
			case !ok:
				r.errorf(n.ID, "boolean node carries %T", n.Data)
			case bd.Op == BoolUnion && count < 1:
				r.errorf(n.ID, "union has no operands")
			case bd.Op != BoolUnion && count < 2:
				r.errorf(n.ID, "%s has %d operands, want at least 2", bd.Op, count)
			}
		case NodeTessellate:
			if count < 1 {
				r.errorf(n.ID, "tessellate has no children")
			}
		}
	}
}

// kernelRepresentable reports whether the SDF kernel can build the node.
// Meshes and height fields have no signed distance form.
func kernelRepresentable(n *Node) bool {
	switch n.Data.(type) {
	case MeshData, FunctionData:
		return false
	}
	return true
}

// checkTessellate requires everything under a tessellate node to be
// buildable by the SDF kernel.
func checkTessellate(g *SceneGraph, nodes []*Node, r *report) {
	for _, n := range nodes {
		if n.Kind != NodeTessellate {
			continue
		}
		below := reachableFrom(g, n.Children)
		for _, m := range nodes {
			if below[m.ID] && !kernelRepresentable(m) {
				r.errorf(n.ID, "tessellate contains %T node %s which the kernel cannot represent", m.Data, m.ID.Short())
			}
		}
	}
}
