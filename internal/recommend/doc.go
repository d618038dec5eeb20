// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package recommend ranks dishes by ingredient similarity.
//
// # Scoring
//
// Two ingredient maps are compared with a Jaccard-style overlap ratio that is
// discounted by how much the shared ingredients differ in quantity:
//
//	ratio        = |T ∩ C| / |T ∪ C|
//	quantityDiff = Σ |tq - cq| / max(tq, cq)   over T ∩ C
//	score        = ratio * (1 - quantityDiff / |T ∩ C|)
//
// Quantities that are missing or not positive count as 1. Empty maps and
// disjoint maps score 0, identical maps score 1, and Score is symmetric.
//
// # Ranking
//
// Rank orders candidates by score descending and breaks ties by ascending
// dish ID, so results are deterministic for a given input. RankParallel
// produces the same ordering while scoring candidates on several goroutines.
//
// # Usage
//
//	rec, err := recommend.NewRecommender(provider, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	dishes, err := rec.Recommend(ctx, dishID)
//	switch {
//	case errors.Is(err, recommend.ErrNotFound):
//	    // 404
//	case errors.Is(err, recommend.ErrInvalidInput):
//	    // 400
//	}
//
// # Thread Safety
//
// Score, Rank and RankParallel are pure functions. A Recommender is safe for
// concurrent use; its result cache is guarded internally.
package recommend
