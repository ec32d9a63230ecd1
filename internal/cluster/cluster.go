// Package cluster groups embedding vectors by cosine similarity.
package cluster

import "github.com/pders01/git-split/internal/embeddings"

// DefaultThreshold is the similarity above which two hunks are considered
// part of the same logical change.
const DefaultThreshold = 0.30

// Cluster is a set of input indexes plus the mean similarity over the
// pairs accepted into it. Single-member clusters score 1.0.
type Cluster struct {
	Indexes       []int
	AvgSimilarity float64
}

// Greedy performs single-pass, single-link clustering over the vectors.
//
// Each unprocessed vector i (in input order) seeds a new cluster; every
// subsequent unprocessed vector j with similarity(i, j) above the threshold
// joins it. Every index lands in exactly one cluster, so the result covers
// the input completely. Order of processing is significant: first-seen
// vectors become cluster seeds, so the output is deterministic for a fixed
// input order but not invariant under reordering. O(n²) in vector count,
// which is bounded by the hunks of a single working-tree diff.
func Greedy(vectors [][]float64, threshold float64) []Cluster {
	processed := make([]bool, len(vectors))
	var clusters []Cluster

	for i := range vectors {
		if processed[i] {
			continue
		}
		processed[i] = true

		c := Cluster{Indexes: []int{i}}
		var similaritySum float64

		for j := i + 1; j < len(vectors); j++ {
			if processed[j] {
				continue
			}
			sim := embeddings.CosineSimilarity(vectors[i], vectors[j])
			if sim > threshold {
				c.Indexes = append(c.Indexes, j)
				similaritySum += sim
				processed[j] = true
			}
		}

		if pairs := len(c.Indexes) - 1; pairs > 0 {
			c.AvgSimilarity = similaritySum / float64(pairs)
		} else {
			c.AvgSimilarity = 1.0
		}

		clusters = append(clusters, c)
	}

	return clusters
}
