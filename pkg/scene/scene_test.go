package scene

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildHollowBox creates a valid graph: a box with a sphere subtracted,
// translated, and registered as the root shape "hollow".
func buildHollowBox() *Graph {
	g := New()

	boxID := NewNodeID("box/1")
	sphereID := NewNodeID("sphere/2")
	diffID := NewNodeID("difference/3")
	moveID := NewNodeID("translate/4")
	shapeID := NewNodeID("shape/hollow")

	g.AddNode(&Node{ID: boxID, Kind: NodePrimitive, Data: BoxData{Size: Vec3{10, 10, 10}}})
	g.AddNode(&Node{ID: sphereID, Kind: NodePrimitive, Data: SphereData{Radius: 4}})
	g.AddNode(&Node{
		ID: diffID, Kind: NodeBoolean,
		Children: []NodeID{boxID, sphereID},
		Data:     BooleanData{Op: OpDifference},
	})
	g.AddNode(&Node{
		ID: moveID, Kind: NodeTransform,
		Children: []NodeID{diffID},
		Data:     TransformData{Translation: &Vec3{1, 2, 3}},
	})
	g.AddNode(&Node{
		ID: shapeID, Kind: NodeShape, Name: "hollow",
		Children: []NodeID{moveID},
		Data:     ShapeData{},
	})
	g.AddRoot(shapeID)

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

func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Graph API
// ---------------------------------------------------------------------------

func TestNodeID(t *testing.T) {
	a := NewNodeID("shape/a")
	if a != NewNodeID("shape/a") {
		t.Error("NewNodeID is not deterministic")
	}
	if a == NewNodeID("shape/b") {
		t.Error("distinct paths produced the same ID")
	}
	if len(a) != 64 {
		t.Errorf("ID length = %d, want 64", len(a))
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 chars", a.Short())
	}
	if !ZeroID.IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestGraphLookup(t *testing.T) {
	g := buildHollowBox()

	if g.NodeCount() != 5 {
		t.Fatalf("NodeCount() = %d, want 5", g.NodeCount())
	}
	n := g.Lookup("hollow")
	if n == nil || n.Kind != NodeShape {
		t.Fatalf("Lookup(hollow) = %v", n)
	}
	if g.Lookup("missing") != nil {
		t.Error("Lookup(missing) should be nil")
	}

	shapes := g.Shapes()
	if len(shapes) != 1 || shapes[0] != n {
		t.Fatalf("Shapes() = %v", shapes)
	}

	children := g.Children(g.Get(NewNodeID("difference/3")))
	if len(children) != 2 || children[1].Data.(SphereData).Radius != 4 {
		t.Errorf("Children(difference) = %v", children)
	}
}

func TestKindStrings(t *testing.T) {
	if NodeBoolean.String() != "boolean" || NodeKind(99).String() != "unknown" {
		t.Error("NodeKind.String mismatch")
	}
	if OpIntersection.String() != "intersection" {
		t.Error("BooleanOp.String mismatch")
	}
	if (Vec3{1, 2, 3}).Add(Vec3{1, 1, 1}) != (Vec3{2, 3, 4}) {
		t.Error("Vec3.Add mismatch")
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestValidateValidGraph(t *testing.T) {
	errs := Validate(buildHollowBox())
	if len(errs) != 0 {
		t.Fatalf("expected no findings, got %v", errs)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *Graph)
		substr  string
		warning bool
	}{
		{
			name: "cycle",
			mutate: func(g *Graph) {
				box := g.Get(NewNodeID("box/1"))
				box.Children = []NodeID{NewNodeID("shape/hollow")}
			},
			substr: "cycle detected",
		},
		{
			name: "dangling child",
			mutate: func(g *Graph) {
				g.Get(NewNodeID("translate/4")).Children = []NodeID{NewNodeID("nowhere")}
			},
			substr: "does not exist",
		},
		{
			name: "duplicate name",
			mutate: func(g *Graph) {
				g.Get(NewNodeID("box/1")).Name = "hollow"
			},
			substr: "duplicate name",
		},
		{
			name:   "dangling root",
			mutate: func(g *Graph) { g.AddRoot(NewNodeID("ghost")) },
			substr: "root reference",
		},
		{
			name: "orphan",
			mutate: func(g *Graph) {
				g.AddNode(&Node{ID: NewNodeID("sphere/9"), Kind: NodePrimitive, Data: SphereData{Radius: 1}})
			},
			substr:  "orphan",
			warning: true,
		},
		{
			name: "boolean arity",
			mutate: func(g *Graph) {
				d := g.Get(NewNodeID("difference/3"))
				d.Children = d.Children[:1]
			},
			substr: "needs at least 2 children",
		},
		{
			name: "negative radius",
			mutate: func(g *Graph) {
				g.Get(NewNodeID("sphere/2")).Data = SphereData{Radius: -1}
			},
			substr: "sphere radius",
		},
		{
			name: "zero box",
			mutate: func(g *Graph) {
				g.Get(NewNodeID("box/1")).Data = BoxData{Size: Vec3{10, 0, 10}}
			},
			substr: "box size Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildHollowBox()
			tt.mutate(g)
			errs := Validate(g)
			if tt.warning {
				if !hasWarning(errs, tt.substr) {
					t.Errorf("expected warning containing %q, got %v", tt.substr, errs)
				}
				if len(Blocking(errs)) != 0 {
					t.Errorf("warning case produced blocking errors: %v", Blocking(errs))
				}
				return
			}
			if !hasError(errs, tt.substr) {
				t.Errorf("expected error containing %q, got %v", tt.substr, errs)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Message: "bad", Severity: SeverityError}
	if e.Error() != "[error] bad" {
		t.Errorf("Error() = %q", e.Error())
	}
	id := NewNodeID("x")
	e = ValidationError{NodeID: id, Message: "odd", Severity: SeverityWarning}
	if !strings.Contains(e.Error(), id.Short()) || !strings.HasPrefix(e.Error(), "[warning]") {
		t.Errorf("Error() = %q", e.Error())
	}
}
