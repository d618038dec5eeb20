// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package recommend

import (
	"cmp"
	"context"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
)

// quantity returns q, or 1 when q is missing or not positive.
func quantity(q float64) float64 {
	if q <= 0 || math.IsNaN(q) {
		return 1
	}
	return q
}

// Score returns the similarity of candidate to target in [0, 1].
// Neither map is modified.
func Score(target, candidate Ingredients) float64 {
	if len(target) == 0 || len(candidate) == 0 {
		return 0
	}

	// Iterate the smaller map and sum in name order so that
	// Score(a, b) and Score(b, a) are bit-for-bit equal.
	small, large := target, candidate
	if len(large) < len(small) {
		small, large = large, small
	}
	shared := make([]string, 0, len(small))
	for name := range small {
		if _, ok := large[name]; ok {
			shared = append(shared, name)
		}
	}
	overlap := len(shared)
	if overlap == 0 {
		return 0
	}
	slices.Sort(shared)

	var quantityDiff float64
	for _, name := range shared {
		tq, cq := quantity(target[name]), quantity(candidate[name])
		quantityDiff += math.Abs(tq-cq) / math.Max(tq, cq)
	}

	union := len(target) + len(candidate) - overlap
	ratio := float64(overlap) / float64(union)
	return ratio * (1 - quantityDiff/float64(overlap))
}

// Rank scores every candidate against target and returns them ordered by
// score descending, ties broken by ascending ID. The result holds at most k
// entries; k <= 0 returns all candidates.
func Rank(target Ingredients, candidates []Candidate, k int) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i := range candidates {
		scored[i] = ScoredCandidate{
			ID:    candidates[i].ID,
			Score: Score(target, candidates[i].Ingredients),
		}
	}
	return sortAndTruncate(scored, k)
}

// RankParallel is Rank with scoring split across up to workers goroutines.
// It returns ctx.Err() if the context is canceled before scoring finishes.
func RankParallel(ctx context.Context, target Ingredients, candidates []Candidate, k, workers int) ([]ScoredCandidate, error) {
	if workers <= 1 || len(candidates) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Rank(target, candidates, k), nil
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	scored := make([]ScoredCandidate, len(candidates))
	chunk := (len(candidates) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				scored[i] = ScoredCandidate{
					ID:    candidates[i].ID,
					Score: Score(target, candidates[i].Ingredients),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sortAndTruncate(scored, k), nil
}

func sortAndTruncate(scored []ScoredCandidate, k int) []ScoredCandidate {
	slices.SortStableFunc(scored, func(a, b ScoredCandidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if k > 0 && k < len(scored) {
		scored = scored[:k]
	}
	return scored
}
