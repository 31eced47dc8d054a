package registry

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Search returns descriptors matching the query, ranked by match quality,
// then display name, then identifier. Matching is fuzzy (subsequence,
// case-insensitive) over name, identifier and tags. An empty query returns
// everything in display order. Each call computes a fresh slice; no
// iteration state survives between calls.
func (r *Registry) Search(query string) []*Descriptor {
	if query == "" {
		return r.All()
	}

	descriptors := r.All()

	// one haystack entry per searchable string, mapped back to its owner
	var targets []string
	var owner []int
	for i, d := range descriptors {
		targets = append(targets, d.Name, d.Identifier)
		owner = append(owner, i, i)
		for _, tag := range d.Tags {
			targets = append(targets, tag)
			owner = append(owner, i)
		}
	}

	best := make(map[int]int)
	for _, m := range fuzzy.Find(query, targets) {
		idx := owner[m.Index]
		if score, ok := best[idx]; !ok || m.Score > score {
			best[idx] = m.Score
		}
	}

	type scored struct {
		d     *Descriptor
		score int
	}
	hits := make([]scored, 0, len(best))
	for idx, score := range best {
		hits = append(hits, scored{d: descriptors[idx], score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if hits[i].d.Name != hits[j].d.Name {
			return hits[i].d.Name < hits[j].d.Name
		}
		return hits[i].d.Identifier < hits[j].d.Identifier
	})

	out := make([]*Descriptor, len(hits))
	for i, h := range hits {
		out[i] = h.d
	}
	return out
}
