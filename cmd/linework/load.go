package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chazu/linework/pkg/engine"
	"github.com/chazu/linework/pkg/graph"
)

// loadScene evaluates and validates a scene file. Findings are written to
// w; any blocking finding is returned as an error.
func (a *app) loadScene(ctx context.Context, file string, w io.Writer) (*graph.SceneGraph, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	res, err := engine.NewEngine().Check(ctx, string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "%s: warning: %s\n", file, warn.Message)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "%s: %s\n", file, e.Error())
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("%s: %d error(s)", file, len(res.Errors))
	}

	a.log.Debug("scene loaded", "file", file, "nodes", res.Graph.NodeCount(), "roots", len(res.Graph.Roots))
	return res.Graph, nil
}
