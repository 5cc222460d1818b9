package graph

import (
	"math"

	"github.com/poiesic/wikiscope/core"
)

const (
	ConnectedFill    = "#2563eb"
	DisconnectedFill = "#64748b"
)

// NodeStyle is the drawing instruction for one visual node.
type NodeStyle struct {
	Title     string
	Label     string
	ShowLabel bool
	X, Y      float64
	Radius    float64
	Fill      string
	Glow      bool
}

// EdgeStyle is the drawing instruction for one visual edge. Color is
// hsla(Hue, 70%, 60%, Opacity).
type EdgeStyle struct {
	From, To string
	X1, Y1   float64
	X2, Y2   float64
	Hue      int
	Opacity  float64
	Width    float64
}

// RenderPlan holds everything needed to draw the visual subset.
type RenderPlan struct {
	Width  float64
	Height float64
	Edges  []EdgeStyle
	Nodes  []NodeStyle
}

// NodeRadius is 3 plus the total strength, capped at 15.
func NodeRadius(totalStrength int) float64 {
	return 3 + float64(min(totalStrength, 15))
}

// LabelThreshold is the strength a node must exceed to be labeled in a
// graph of n nodes.
func LabelThreshold(n int) int {
	switch {
	case n > 100:
		return 8
	case n > 50:
		return 4
	default:
		return 2
	}
}

// ShowLabel reports whether a node is labeled. Small graphs label every node.
func ShowLabel(totalStrength, n int) bool {
	return n <= 15 || totalStrength > LabelThreshold(n)
}

// Label shortens titles longer than 15 runes to 12 runes and "..".
func Label(title string) string {
	runes := []rune(title)
	if len(runes) > 15 {
		return string(runes[:12]) + ".."
	}
	return title
}

// EdgeHue grows with strength from 200 up to 260.
func EdgeHue(strength int) int {
	return min(200+strength*10, 260)
}

// EdgeOpacity grows with strength from 0.05 up to 0.35.
func EdgeOpacity(strength int) float64 {
	return 0.05 + math.Min(float64(strength)*0.05, 0.3)
}

// EdgeWidth is half the strength, kept between 0.3 and 4.
func EdgeWidth(strength int) float64 {
	return math.Max(0.3, math.Min(float64(strength)/2, 4))
}

// plan builds drawing instructions for positioned nodes. total is the size
// of the complete node set, which drives label visibility.
func plan(c Canvas, visual []core.ArticleNode, edges []core.Edge, total int) RenderPlan {
	p := RenderPlan{
		Width:  c.Width,
		Height: c.Height,
		Edges:  make([]EdgeStyle, 0, len(edges)),
		Nodes:  make([]NodeStyle, 0, len(visual)),
	}

	positions := make(map[string]core.Point, len(visual))
	for _, n := range visual {
		if n.Position != nil {
			positions[n.Title] = *n.Position
		}
	}

	for _, e := range edges {
		from, okFrom := positions[e.From]
		to, okTo := positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		p.Edges = append(p.Edges, EdgeStyle{
			From:    e.From,
			To:      e.To,
			X1:      from.X,
			Y1:      from.Y,
			X2:      to.X,
			Y2:      to.Y,
			Hue:     EdgeHue(e.Strength),
			Opacity: EdgeOpacity(e.Strength),
			Width:   EdgeWidth(e.Strength),
		})
	}

	for _, n := range visual {
		pos, ok := positions[n.Title]
		if !ok {
			continue
		}
		fill := DisconnectedFill
		if n.TotalStrength > 0 {
			fill = ConnectedFill
		}
		p.Nodes = append(p.Nodes, NodeStyle{
			Title:     n.Title,
			Label:     Label(n.Title),
			ShowLabel: ShowLabel(n.TotalStrength, total),
			X:         pos.X,
			Y:         pos.Y,
			Radius:    NodeRadius(n.TotalStrength),
			Fill:      fill,
			Glow:      n.TotalStrength > 0,
		})
	}

	return p
}
