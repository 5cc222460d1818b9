package graph

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/wikiscope/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minKeywordRunes is the shortest title word that counts, exclusive.
const minKeywordRunes = 3

type keywordExtractor struct {
	lower cases.Caser
}

func newKeywordExtractor(lang string) *keywordExtractor {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return &keywordExtractor{lower: cases.Lower(tag)}
}

// keywords returns the set of significant words of a title.
func (k *keywordExtractor) keywords(title string) map[string]struct{} {
	words := strings.Fields(k.lower.String(title))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > minKeywordRunes {
			set[w] = struct{}{}
		}
	}
	return set
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// Strength scores a pair of articles: one point per shared category and
// two per shared title word.
func Strength(a, b core.ArticleNode) int {
	k := newKeywordExtractor("und")
	return strength(toSet(a.Categories), toSet(b.Categories), k.keywords(a.Title), k.keywords(b.Title))
}

func strength(catsA, catsB, wordsA, wordsB map[string]struct{}) int {
	return intersectionSize(catsA, catsB) + 2*intersectionSize(wordsA, wordsB)
}

// score computes every pairwise edge and accumulates node totals in place.
// Edges are emitted in (i, j) order with i < j in input order.
func score(nodes []core.ArticleNode, k *keywordExtractor) []core.Edge {
	cats := make([]map[string]struct{}, len(nodes))
	words := make([]map[string]struct{}, len(nodes))
	for i, n := range nodes {
		cats[i] = toSet(n.Categories)
		words[i] = k.keywords(n.Title)
	}

	edges := []core.Edge{}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			s := strength(cats[i], cats[j], words[i], words[j])
			if s <= 0 {
				continue
			}
			nodes[i].TotalStrength += s
			nodes[j].TotalStrength += s
			nodes[i].ConnectionCount++
			nodes[j].ConnectionCount++
			edges = append(edges, core.Edge{From: nodes[i].Title, To: nodes[j].Title, Strength: s})
		}
	}
	return edges
}
