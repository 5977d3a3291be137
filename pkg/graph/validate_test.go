package graph

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidScene creates a small valid scene: a sphere minus a placed cube,
// next to a tessellated cylinder, all under a group root.
func buildValidScene() *SceneGraph {
	g := New()

	ballID := NewNodeID("defshape/ball")
	boxID := NewNodeID("defshape/box")
	placeID := NewNodeID("place/1")
	diffID := NewNodeID("difference/2")
	postID := NewNodeID("cylinder/3")
	tessID := NewNodeID("tessellate/4")
	groupID := NewNodeID("scene/main")

	g.AddNode(&Node{
		ID: ballID, Kind: NodePrimitive, Name: "ball",
		Data: SphereData{Radius: 1},
	})
	g.AddNode(&Node{
		ID: boxID, Kind: NodePrimitive, Name: "box",
		Data: CubeData{Min: Vec3{-0.5, -0.5, -0.5}, Max: Vec3{0.5, 0.5, 0.5}},
	})
	g.AddNode(&Node{
		ID: placeID, Kind: NodeTransform,
		Children: []NodeID{boxID},
		Data:     TransformData{Translation: &Vec3{0.5, 0, 0}},
	})
	g.AddNode(&Node{
		ID: diffID, Kind: NodeBoolean,
		Children: []NodeID{ballID, placeID},
		Data:     BooleanData{Op: BoolDifference},
	})
	g.AddNode(&Node{
		ID: postID, Kind: NodePrimitive,
		Data: CylinderData{Radius: 0.2, Z0: -1, Z1: 1},
	})
	g.AddNode(&Node{
		ID: tessID, Kind: NodeTessellate,
		Children: []NodeID{postID},
		Data:     TessellateData{Cells: 32},
	})
	g.AddNode(&Node{
		ID:       groupID,
		Kind:     NodeGroup,
		Name:     "main",
		Children: []NodeID{diffID, tessID},
		Data:     GroupData{Description: "test scene"},
	})
	g.AddRoot(groupID)

	return g
}

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning returns true if errs contains at least one warning-severity
// finding whose message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// errorCount returns the number of error-severity findings.
func errorCount(errs []ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}

func logAll(t *testing.T, errs []ValidationError) {
	t.Helper()
	for _, e := range errs {
		t.Logf("  %s", e)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidate_ValidGraph(t *testing.T) {
	g := buildValidScene()
	errs := Validate(g)
	if len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("unexpected validation error: %s", e)
		}
	}
}

func TestValidate_EmptyGraph(t *testing.T) {
	g := New()
	errs := Validate(g)
	if len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("unexpected validation error on empty graph: %s", e)
		}
	}
}

func TestValidate_CycleDetection(t *testing.T) {
	g := New()

	aID := NewNodeID("a")
	bID := NewNodeID("b")
	cID := NewNodeID("c")

	// Create a cycle: a -> b -> c -> a
	g.AddNode(&Node{ID: aID, Kind: NodeGroup, Name: "a", Children: []NodeID{bID}, Data: GroupData{}})
	g.AddNode(&Node{ID: bID, Kind: NodeGroup, Name: "b", Children: []NodeID{cID}, Data: GroupData{}})
	g.AddNode(&Node{ID: cID, Kind: NodeGroup, Name: "c", Children: []NodeID{aID}, Data: GroupData{}})
	g.AddRoot(aID)

	errs := Validate(g)
	if !hasError(errs, "cycle") {
		t.Error("expected cycle detection error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DiamondIsNotACycle(t *testing.T) {
	g := New()

	leafID := NewNodeID("leaf")
	aID := NewNodeID("a")
	bID := NewNodeID("b")
	rootID := NewNodeID("root")

	g.AddNode(&Node{ID: leafID, Kind: NodePrimitive, Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: aID, Kind: NodeTransform, Children: []NodeID{leafID}, Data: TransformData{}})
	g.AddNode(&Node{ID: bID, Kind: NodeTransform, Children: []NodeID{leafID}, Data: TransformData{}})
	g.AddNode(&Node{ID: rootID, Kind: NodeGroup, Children: []NodeID{aID, bID}, Data: GroupData{}})
	g.AddRoot(rootID)

	errs := Validate(g)
	if hasError(errs, "cycle") {
		t.Error("shared child reported as a cycle")
		logAll(t, errs)
	}
}

func TestValidate_DanglingReference(t *testing.T) {
	g := New()

	parentID := NewNodeID("parent")
	missingID := NewNodeID("missing-child")

	g.AddNode(&Node{
		ID: parentID, Kind: NodeGroup, Name: "parent",
		Children: []NodeID{missingID},
		Data:     GroupData{},
	})
	g.AddRoot(parentID)

	errs := Validate(g)
	if !hasError(errs, "does not exist") {
		t.Error("expected dangling reference error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DanglingRoot(t *testing.T) {
	g := New()
	g.AddRoot(NewNodeID("nowhere"))

	errs := Validate(g)
	if !hasError(errs, "root reference") {
		t.Error("expected dangling root error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	g := New()

	aID := NewNodeID("a")
	bID := NewNodeID("b")
	g.AddNode(&Node{ID: aID, Kind: NodePrimitive, Name: "same", Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: bID, Kind: NodePrimitive, Name: "same", Data: SphereData{Radius: 2}})
	g.AddRoot(aID)
	g.AddRoot(bID)

	errs := Validate(g)
	if !hasError(errs, "duplicate name") {
		t.Error("expected duplicate name error, got none")
		logAll(t, errs)
	}
}

func TestValidate_StaleNameIndex(t *testing.T) {
	g := New()
	g.NameIndex["ghost"] = NewNodeID("ghost")

	errs := Validate(g)
	if !hasError(errs, "non-existent node") {
		t.Error("expected stale name index error, got none")
		logAll(t, errs)
	}
}

func TestValidate_OrphanWarning(t *testing.T) {
	g := buildValidScene()
	orphanID := NewNodeID("defshape/spare")
	g.AddNode(&Node{ID: orphanID, Kind: NodePrimitive, Name: "spare", Data: SphereData{Radius: 1}})

	errs := Validate(g)
	if errorCount(errs) != 0 {
		t.Error("orphan should not be an error")
		logAll(t, errs)
	}
	if !hasWarning(errs, `"spare" is not reachable`) {
		t.Error("expected orphan warning, got none")
		logAll(t, errs)
	}
}

func TestValidate_Operands(t *testing.T) {
	leaf := &Node{ID: NewNodeID("leaf"), Kind: NodePrimitive, Data: SphereData{Radius: 1}}
	other := &Node{ID: NewNodeID("other"), Kind: NodePrimitive, Data: SphereData{Radius: 2}}

	tests := []struct {
		name    string
		node    *Node
		wantErr string
	}{
		{
			name:    "transform without child",
			node:    &Node{Kind: NodeTransform, Data: TransformData{}},
			wantErr: "transform has 0 children",
		},
		{
			name:    "transform with two children",
			node:    &Node{Kind: NodeTransform, Children: []NodeID{leaf.ID, other.ID}, Data: TransformData{}},
			wantErr: "transform has 2 children",
		},
		{
			name:    "difference with one operand",
			node:    &Node{Kind: NodeBoolean, Children: []NodeID{leaf.ID}, Data: BooleanData{Op: BoolDifference}},
			wantErr: "difference has 1 operands",
		},
		{
			name:    "intersection with one operand",
			node:    &Node{Kind: NodeBoolean, Children: []NodeID{leaf.ID}, Data: BooleanData{Op: BoolIntersection}},
			wantErr: "intersection has 1 operands",
		},
		{
			name:    "empty union",
			node:    &Node{Kind: NodeBoolean, Data: BooleanData{Op: BoolUnion}},
			wantErr: "union has no operands",
		},
		{
			name:    "boolean without payload",
			node:    &Node{Kind: NodeBoolean, Children: []NodeID{leaf.ID, other.ID}, Data: GroupData{}},
			wantErr: "boolean node carries",
		},
		{
			name:    "empty tessellate",
			node:    &Node{Kind: NodeTessellate, Data: TessellateData{}},
			wantErr: "tessellate has no children",
		},
		{
			name:    "primitive with children",
			node:    &Node{Kind: NodePrimitive, Children: []NodeID{leaf.ID}, Data: SphereData{Radius: 1}},
			wantErr: "primitive has 1 children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode(leaf)
			g.AddNode(other)
			tt.node.ID = NewNodeID("under-test")
			g.AddNode(tt.node)
			g.AddRoot(tt.node.ID)

			errs := Validate(g)
			if !hasError(errs, tt.wantErr) {
				t.Errorf("expected error containing %q", tt.wantErr)
				logAll(t, errs)
			}
		})
	}
}

func TestValidate_UnionWithOneOperandIsFine(t *testing.T) {
	g := New()
	leafID := NewNodeID("leaf")
	unionID := NewNodeID("union")
	g.AddNode(&Node{ID: leafID, Kind: NodePrimitive, Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: unionID, Kind: NodeBoolean, Children: []NodeID{leafID}, Data: BooleanData{Op: BoolUnion}})
	g.AddRoot(unionID)

	if errs := Validate(g); len(errs) != 0 {
		t.Error("unexpected findings")
		logAll(t, errs)
	}
}

func TestValidate_TessellateRepresentable(t *testing.T) {
	tests := []struct {
		name    string
		data    NodeData
		wantErr bool
	}{
		{"sphere", SphereData{Radius: 1}, false},
		{"cube", CubeData{Max: Vec3{1, 1, 1}}, false},
		{"cone", ConeData{Radius: 1, Height: 1}, false},
		{"mesh", MeshData{Path: "bunny.stl"}, true},
		{"function", FunctionData{Surface: "saddle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			leafID := NewNodeID("leaf")
			placeID := NewNodeID("place")
			tessID := NewNodeID("tess")
			g.AddNode(&Node{ID: leafID, Kind: NodePrimitive, Data: tt.data})
			g.AddNode(&Node{ID: placeID, Kind: NodeTransform, Children: []NodeID{leafID}, Data: TransformData{}})
			g.AddNode(&Node{ID: tessID, Kind: NodeTessellate, Children: []NodeID{placeID}, Data: TessellateData{}})
			g.AddRoot(tessID)

			got := hasError(Validate(g), "kernel cannot represent")
			if got != tt.wantErr {
				t.Errorf("representability error = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Message: "bad", Severity: SeverityError}
	if got := e.Error(); got != "[error] bad" {
		t.Errorf("Error() = %q", got)
	}

	id := NewNodeID("x")
	e = ValidationError{NodeID: id, Message: "odd", Severity: SeverityWarning}
	want := "[warning] node " + id.Short() + ": odd"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidateAll_SplitsWarnings(t *testing.T) {
	g := buildValidScene()
	g.AddNode(&Node{ID: NewNodeID("spare"), Kind: NodePrimitive, Name: "spare", Data: SphereData{Radius: 1}})

	res := ValidateAll(g)
	if !res.OK() {
		t.Errorf("ValidateAll reported errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(res.Warnings))
	}
}
