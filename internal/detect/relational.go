package detect

import "sort"

// Pair is one ordered candidate link between two id-like columns of the
// same table, with its vocabulary score.
type Pair struct {
	Source string
	Dest   string
	Score  int
}

// Subtype renders the pair's record subtype.
func (p Pair) Subtype() string { return p.Source + "->" + p.Dest }

// ColumnRef renders the pair's provenance column field.
func (p Pair) ColumnRef() string { return p.Source + "," + p.Dest }

// RelationColumns filters a table's column names down to the ones whose
// name matches the entity-link vocabulary.
func (c *Config) RelationColumns(names []string) []string {
	var out []string
	for _, n := range names {
		if c.Relation.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}

// RelationPairs builds all ordered pairs of distinct link columns, scores
// each by the sum of its source-side and destination-side keyword ranks,
// and keeps the top MaxRelationPairs to bound growth on wide tables.
// Pairs where neither side matches the directional vocabulary score zero
// and are discarded: a zero-score pair is just the reversal of a real one.
// This is naming-convention coverage, not foreign-key discovery.
func (c *Config) RelationPairs(names []string) []Pair {
	linkCols := c.RelationColumns(names)
	if len(linkCols) < 2 {
		return nil
	}

	var pairs []Pair
	for _, a := range linkCols {
		for _, b := range linkCols {
			if a == b {
				continue
			}
			score := keywordRank(a, c.SourceRank) + keywordRank(b, c.DestRank)
			if score == 0 {
				continue
			}
			pairs = append(pairs, Pair{Source: a, Dest: b, Score: score})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })

	if len(pairs) > c.MaxRelationPairs {
		pairs = pairs[:c.MaxRelationPairs]
	}
	return pairs
}
