package graph

import (
	"regexp"
	"slices"
	"strings"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
)

// TopCategoryCount is the number of categories listed in a summary.
const TopCategoryCount = 5

var categoryPrefix = regexp.MustCompile(`(?i)^(?:kategorie|category):`)

// StripCategoryPrefix removes a leading "Kategorie:" or "Category:".
func StripCategoryPrefix(name string) string {
	return categoryPrefix.ReplaceAllString(name, "")
}

// summarize describes the complete node set. ranked must be the output of
// rank(nodes).
func summarize(nodes []core.ArticleNode, edges []core.Edge, ranked []core.ArticleNode) core.GraphSummary {
	summary := core.GraphSummary{
		EdgeCount:     len(edges),
		TopCategories: topCategories(nodes, TopCategoryCount),
	}
	for _, n := range nodes {
		if n.ConnectionCount > 0 {
			summary.ConnectedNodes++
		}
	}
	if len(ranked) > 0 {
		summary.Strongest = ranked[0].Title
		summary.StrongestScore = ranked[0].TotalStrength
	}
	return summary
}

// topCategories counts, per stripped category name, the nodes carrying
// it. Ties keep first-encounter order.
func topCategories(nodes []core.ArticleNode, limit int) []core.CategoryCount {
	counts := []core.CategoryCount{}
	index := make(map[string]int)
	for _, n := range nodes {
		for _, c := range n.Categories {
			name := StripCategoryPrefix(c)
			if i, ok := index[name]; ok {
				counts[i].Count++
				continue
			}
			index[name] = len(counts)
			counts = append(counts, core.CategoryCount{Name: name, Count: 1})
		}
	}
	slices.SortStableFunc(counts, func(a, b core.CategoryCount) int {
		return b.Count - a.Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// explain renders the summary as localized lines.
func explain(s core.GraphSummary, total int, loc i18n.Locale) []string {
	strongest := s.Strongest
	if strongest == "" {
		strongest = "N/A"
	}
	names := make([]string, len(s.TopCategories))
	for i, c := range s.TopCategories {
		names[i] = c.Name
	}
	categories := strings.Join(names, ", ")
	if categories == "" {
		categories = "N/A"
	}

	return []string{
		loc.T("network-explanation-intro",
			"{total} articles analyzed, {connected} of them connected by {edges} relationships.",
			map[string]any{"total": total, "connected": s.ConnectedNodes, "edges": s.EdgeCount}),
		loc.T("network-explanation-interpretation",
			"Articles are connected when they share categories or significant title words. Shared title words count double.", nil),
		loc.T("network-explanation-central", "Most central article: {title}", map[string]any{"title": strongest}),
		loc.T("network-explanation-categories", "Most frequent categories: {categories}", map[string]any{"categories": categories}),
		loc.T("network-explanation-note",
			"Only the ten strongest articles are drawn; the export contains the complete analysis.", nil),
	}
}
