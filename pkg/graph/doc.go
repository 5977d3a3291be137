// Package graph defines the scene graph produced by evaluating a scene
// description. The graph is a DAG of primitives, transforms, boolean
// combinations, groups and tessellation blocks. It is never mutated after
// evaluation; each evaluation produces a new graph.
package graph
