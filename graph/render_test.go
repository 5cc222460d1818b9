package graph

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRadius(t *testing.T) {
	assert.Equal(t, 3.0, NodeRadius(0))
	assert.Equal(t, 10.0, NodeRadius(7))
	assert.Equal(t, 18.0, NodeRadius(15))
	assert.Equal(t, 18.0, NodeRadius(90))
}

func TestLabelThreshold(t *testing.T) {
	tests := []struct {
		nodes int
		want  int
	}{
		{nodes: 10, want: 2},
		{nodes: 50, want: 2},
		{nodes: 51, want: 4},
		{nodes: 100, want: 4},
		{nodes: 101, want: 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelThreshold(tt.nodes), tt.nodes)
	}

	assert.True(t, ShowLabel(0, 15))
	assert.False(t, ShowLabel(2, 16))
	assert.True(t, ShowLabel(3, 16))
	assert.False(t, ShowLabel(8, 200))
	assert.True(t, ShowLabel(9, 200))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Short", Label("Short"))
	assert.Equal(t, "Exactly fifteen", Label("Exactly fifteen"))
	assert.Equal(t, "Relativitäts..", Label("Relativitätstheorie"))
}

func TestEdgeStyle(t *testing.T) {
	assert.Equal(t, 210, EdgeHue(1))
	assert.Equal(t, 260, EdgeHue(6))
	assert.Equal(t, 260, EdgeHue(40))

	assert.InDelta(t, 0.10, EdgeOpacity(1), 1e-9)
	assert.InDelta(t, 0.35, EdgeOpacity(6), 1e-9)
	assert.InDelta(t, 0.35, EdgeOpacity(20), 1e-9)

	assert.InDelta(t, 0.5, EdgeWidth(1), 1e-9)
	assert.InDelta(t, 4.0, EdgeWidth(8), 1e-9)
	assert.InDelta(t, 4.0, EdgeWidth(30), 1e-9)
}

func TestEdgeWidthFloor(t *testing.T) {
	// strength is always positive, the floor guards fractional halves
	assert.InDelta(t, 0.3, EdgeWidth(0), 1e-9)
}

func TestRenderPlan(t *testing.T) {
	b, _ := newTestBuilder(t, map[string][]string{"A": {"X"}, "B": {"X"}})

	result, err := b.Build(context.Background(), "q", items("A", "B", "Lonely article title"), i18n.NewLocale("en"))
	require.NoError(t, err)

	p := result.Render
	assert.Equal(t, 800.0, p.Width)
	assert.Equal(t, 650.0, p.Height)
	require.Len(t, p.Nodes, 3)
	require.Len(t, p.Edges, 1)

	assert.Equal(t, ConnectedFill, p.Nodes[0].Fill)
	assert.True(t, p.Nodes[0].Glow)
	assert.Equal(t, 4.0, p.Nodes[0].Radius)
	assert.Equal(t, DisconnectedFill, p.Nodes[2].Fill)
	assert.Equal(t, "Lonely artic..", p.Nodes[2].Label)
	assert.True(t, p.Nodes[2].ShowLabel)

	e := p.Edges[0]
	assert.Equal(t, "A", e.From)
	assert.Equal(t, p.Nodes[0].X, e.X1)
	assert.Equal(t, p.Nodes[1].Y, e.Y2)
	assert.Equal(t, 210, e.Hue)
}

func TestPlan_SkipsUnpositioned(t *testing.T) {
	visual := []core.ArticleNode{{Title: "A", Position: &core.Point{X: 1, Y: 2}}, {Title: "B"}}
	p := plan(DefaultCanvas(), visual, []core.Edge{{From: "A", To: "B", Strength: 1}}, 2)
	assert.Len(t, p.Nodes, 1)
	assert.Empty(t, p.Edges)
}

func TestWriteSVG(t *testing.T) {
	p := RenderPlan{
		Width:  800,
		Height: 650,
		Edges:  []EdgeStyle{{From: "A", To: "B", X1: 625, Y1: 325, X2: 175, Y2: 325, Hue: 210, Opacity: 0.1, Width: 0.5}},
		Nodes: []NodeStyle{
			{Title: "A & B", Label: "A & B", ShowLabel: true, X: 625, Y: 325, Radius: 4, Fill: ConnectedFill, Glow: true},
			{Title: "<C>", Label: "<C>", X: 175, Y: 325, Radius: 3, Fill: DisconnectedFill},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, p))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="650"`))
	assert.Contains(t, out, `<line x1="625" y1="325" x2="175" y2="325"`)
	assert.Contains(t, out, `stroke-opacity="0.1" stroke-width="0.5"`)
	assert.Contains(t, out, `r="4" fill="#2563eb" filter="url(#glow)"`)
	assert.Contains(t, out, `A &amp; B</text>`)
	assert.Contains(t, out, `<title>&lt;C&gt;</title>`)
	assert.NotContains(t, out, `&lt;C&gt;</text>`)
	assert.Less(t, strings.Index(out, "<line"), strings.Index(out, "<circle"))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}
