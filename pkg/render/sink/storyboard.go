package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// ToDOT converts the storyboard of sc to Graphviz DOT: one node per step,
// chained in playback order. Waits are drawn as small dashed nodes.
func ToDOT(sc *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph storyboard {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("\n")

	steps := sc.Steps()
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s\n%s\n%ss - %ss", s.Index+1, s.Name, s.Description,
			geom.FormatNumber(s.Start), geom.FormatNumber(s.Start+s.Duration))
		attrs := fmt.Sprintf("label=%q", label)
		if s.Name == "wait" {
			attrs = fmt.Sprintf("label=%q, style=\"rounded,dashed\", fontsize=10",
				"wait "+geom.FormatNumber(s.Duration)+"s")
		}
		fmt.Fprintf(&buf, "  s%d [%s];\n", s.Index, attrs)
	}

	buf.WriteString("\n")
	for i := 1; i < len(steps); i++ {
		fmt.Fprintf(&buf, "  s%d -> s%d;\n", i-1, i)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderStoryboard renders the storyboard diagram of sc to SVG using
// Graphviz.
func RenderStoryboard(ctx context.Context, sc *scene.Scene) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(sc)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
