package graph

import (
	"math"
	"strings"
	"testing"
)

func hasGeomError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func singleNodeGraph(data NodeData) *SceneGraph {
	g := New()
	id := NewNodeID("under-test")
	g.AddNode(&Node{ID: id, Kind: NodePrimitive, Data: data})
	g.AddRoot(id)
	return g
}

func TestValidateGeometry_Primitives(t *testing.T) {
	unit := Bounds{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}

	tests := []struct {
		name    string
		data    NodeData
		wantErr string // empty means no error expected
	}{
		{"valid sphere", SphereData{Radius: 1}, ""},
		{"zero radius sphere", SphereData{Radius: 0}, "sphere radius"},
		{"negative radius sphere", SphereData{Radius: -1}, "sphere radius"},
		{"infinite radius sphere", SphereData{Radius: math.Inf(1)}, "sphere radius"},
		{"NaN radius sphere", SphereData{Radius: math.NaN()}, "sphere radius"},
		{"valid cube", CubeData{Min: unit.Min, Max: unit.Max}, ""},
		{"flat cube", CubeData{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 0}}, "cube min Z"},
		{"inverted cube", CubeData{Min: Vec3{2, 0, 0}, Max: Vec3{1, 1, 1}}, "cube min X"},
		{"negative stripes", CubeData{Min: unit.Min, Max: unit.Max, Stripes: -1}, "stripes"},
		{"valid cylinder", CylinderData{Radius: 1, Z0: 0, Z1: 1}, ""},
		{"zero radius cylinder", CylinderData{Radius: 0, Z0: 0, Z1: 1}, "cylinder radius"},
		{"inverted cylinder", CylinderData{Radius: 1, Z0: 1, Z1: 0}, "cylinder z0"},
		{"valid cone", ConeData{Radius: 1, Height: 2}, ""},
		{"flat cone", ConeData{Radius: 1, Height: 0}, "cone height"},
		{"needle cone", ConeData{Radius: 0, Height: 1}, "cone radius"},
		{"valid mesh", MeshData{Path: "bunny.stl"}, ""},
		{"mesh without path", MeshData{}, "no file path"},
		{"mesh with bad fit", MeshData{Path: "a.obj", Fit: &Bounds{Min: Vec3{1, 1, 1}}}, "mesh fit box"},
		{"valid function", FunctionData{Surface: "saddle", Bounds: unit, Direction: "below", Texture: "swirl"}, ""},
		{"unknown surface", FunctionData{Surface: "teapot", Bounds: unit}, "unknown surface"},
		{"function bad bounds", FunctionData{Surface: "saddle"}, "function box"},
		{"function bad direction", FunctionData{Surface: "saddle", Bounds: unit, Direction: "sideways"}, "unknown direction"},
		{"function bad texture", FunctionData{Surface: "saddle", Bounds: unit, Texture: "plaid"}, "unknown function texture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, _ := validateGeometry(singleNodeGraph(tt.data))
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if !hasGeomError(errs, tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateGeometry_Scale(t *testing.T) {
	tests := []struct {
		name    string
		td      TransformData
		wantErr bool
	}{
		{"no scale", TransformData{}, false},
		{"uniform", TransformData{Scale: &Vec3{2, 2, 2}}, false},
		{"mirror", TransformData{Scale: &Vec3{-1, 1, 1}}, false},
		{"zero component", TransformData{Scale: &Vec3{1, 0, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			leafID := NewNodeID("leaf")
			placeID := NewNodeID("place")
			g.AddNode(&Node{ID: leafID, Kind: NodePrimitive, Data: SphereData{Radius: 1}})
			g.AddNode(&Node{ID: placeID, Kind: NodeTransform, Children: []NodeID{leafID}, Data: tt.td})
			g.AddRoot(placeID)

			errs, _ := validateGeometry(g)
			if got := hasGeomError(errs, "zero component"); got != tt.wantErr {
				t.Errorf("zero scale error = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateGeometry_Cells(t *testing.T) {
	for _, cells := range []int{0, 1, 64} {
		g := New()
		g.AddNode(&Node{ID: NewNodeID("t"), Kind: NodeTessellate, Data: TessellateData{Cells: cells}})
		if errs, _ := validateGeometry(g); len(errs) != 0 {
			t.Errorf("cells %d: unexpected errors %v", cells, errs)
		}
	}

	g := New()
	g.AddNode(&Node{ID: NewNodeID("t"), Kind: NodeTessellate, Data: TessellateData{Cells: -4}})
	errs, _ := validateGeometry(g)
	if !hasGeomError(errs, "cells is -4") {
		t.Errorf("expected cells error, got %v", errs)
	}
}

func TestValidateGeometry_Camera(t *testing.T) {
	tests := []struct {
		name        string
		cam         *Camera
		wantErr     bool
		wantWarning string
	}{
		{"no camera", nil, false, ""},
		{"good camera", &Camera{Eye: &Vec3{4, 3, 2}, Center: &Vec3{}, Up: &Vec3{0, 0, 1}, Fovy: 50}, false, ""},
		{"eye on center", &Camera{Eye: &Vec3{1, 1, 1}, Center: &Vec3{1, 1, 1}}, false, "coincide"},
		{"up along view", &Camera{Eye: &Vec3{0, 0, 5}, Center: &Vec3{}, Up: &Vec3{0, 0, 1}}, false, "parallel"},
		{"fovy too wide", &Camera{Fovy: 180}, true, ""},
		{"negative fovy", &Camera{Fovy: -10}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.Camera = tt.cam
			errs, warnings := validateGeometry(g)
			if got := len(errs) > 0; got != tt.wantErr {
				t.Errorf("errors = %v, want error %v", errs, tt.wantErr)
			}
			if tt.wantWarning == "" {
				if len(warnings) != 0 {
					t.Errorf("unexpected warnings: %v", warnings)
				}
				return
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w.Message, tt.wantWarning) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected warning containing %q, got %v", tt.wantWarning, warnings)
			}
		})
	}
}

func TestValidateAll_GeometryErrorsBlock(t *testing.T) {
	g := singleNodeGraph(SphereData{Radius: -2})
	res := ValidateAll(g)
	if res.OK() {
		t.Fatal("ValidateAll should report the negative radius")
	}
	if !strings.Contains(res.Errors[0].Error(), "sphere radius") {
		t.Errorf("error = %q", res.Errors[0].Error())
	}
}
