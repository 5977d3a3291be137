package assemble

import (
	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/graph"
)

// matrixStack accumulates transforms during graph traversal. The top of
// the stack maps the current node's local frame to world space.
type matrixStack struct {
	frames []geom.Matrix
}

func newMatrixStack() *matrixStack {
	return &matrixStack{frames: []geom.Matrix{geom.Identity()}}
}

// localMatrix builds the matrix for a transform node: scale, then
// rotation, then translation.
func localMatrix(td graph.TransformData) geom.Matrix {
	m := geom.Identity()
	if td.Scale != nil {
		m = geom.Scale(td.Scale.Vec())
	}
	if td.Rotation != nil {
		m = geom.EulerDegrees(td.Rotation.X, td.Rotation.Y, td.Rotation.Z).Mul(m)
	}
	if td.Translation != nil {
		m = m.Translated(td.Translation.Vec())
	}
	return m
}

func (ms *matrixStack) push(local geom.Matrix) {
	ms.frames = append(ms.frames, ms.top().Mul(local))
}

func (ms *matrixStack) pop() {
	if len(ms.frames) > 1 {
		ms.frames = ms.frames[:len(ms.frames)-1]
	}
}

func (ms *matrixStack) top() geom.Matrix {
	return ms.frames[len(ms.frames)-1]
}

// identity reports whether no transform is in effect.
func (ms *matrixStack) identity() bool {
	return ms.top() == geom.Identity()
}
