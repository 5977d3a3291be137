package graph

import (
	"crypto/sha256"
	"encoding/hex"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NodeID is a content-addressed identifier: the SHA-256 of the node's
// path string within the scene description.
type NodeID [32]byte

// ZeroID is the unset NodeID.
var ZeroID NodeID

// NewNodeID derives the ID for a node path such as "defshape/ball".
func NewNodeID(path string) NodeID {
	return NodeID(sha256.Sum256([]byte(path)))
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool { return id == ZeroID }

func (id NodeID) String() string { return hex.EncodeToString(id[:]) }

// Short returns the first 12 hex digits, for messages.
func (id NodeID) Short() string { return hex.EncodeToString(id[:6]) }

// Vec3 is a point or direction in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec converts to the vector type used by the renderer.
func (v Vec3) Vec() v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// Bounds is an axis-aligned box given by two corners.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Valid reports whether Min is strictly below Max on every axis.
func (b Bounds) Valid() bool {
	return b.Min.X < b.Max.X && b.Min.Y < b.Max.Y && b.Min.Z < b.Max.Z
}
