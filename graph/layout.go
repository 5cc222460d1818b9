package graph

import (
	"math"
	"slices"

	"github.com/poiesic/wikiscope/core"
)

// rank returns a copy of nodes ordered by total strength, descending.
// Ties keep input order.
func rank(nodes []core.ArticleNode) []core.ArticleNode {
	ranked := slices.Clone(nodes)
	slices.SortStableFunc(ranked, func(a, b core.ArticleNode) int {
		return b.TotalStrength - a.TotalStrength
	})
	return ranked
}

// layoutCircle places k points evenly on the canvas circle, the first at
// angle zero.
func layoutCircle(c Canvas, k int) []core.Point {
	points := make([]core.Point, k)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(k)
		points[i] = core.Point{
			X: c.CenterX + c.Radius*math.Cos(angle),
			Y: c.CenterY + c.Radius*math.Sin(angle),
		}
	}
	return points
}

// filterEdges keeps edges whose endpoints are both in titles.
func filterEdges[V any](edges []core.Edge, titles map[string]V) []core.Edge {
	out := []core.Edge{}
	for _, e := range edges {
		_, from := titles[e.From]
		_, to := titles[e.To]
		if from && to {
			out = append(out, e)
		}
	}
	return out
}
