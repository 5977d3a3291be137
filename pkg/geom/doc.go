// Package geom holds the small linear-algebra layer the renderer is built on:
// helpers over sdfx vectors, 4x4 matrices, rays, hits and axis-aligned boxes.
package geom
