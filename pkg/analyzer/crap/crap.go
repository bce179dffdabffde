// Package crap scores functions with the CRAP metric: cyclomatic complexity
// weighted by how much of the function's body the test suite never touches.
package crap

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Score computes CRAP = CC^2 * (1 - coverage)^3 + CC, with coverage given
// as a percentage. Full coverage collapses the score to the complexity
// itself; zero coverage yields CC^2 + CC.
func Score(complexity uint32, coveragePct float64) float64 {
	cc := float64(complexity)
	uncov := 1 - coveragePct/100
	return cc*cc*uncov*uncov*uncov + cc
}

// SortEntries orders entries by descending score, the worst offenders first.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Crap > entries[j].Crap
	})
}

// Summarize computes aggregate statistics over the scored entries.
func Summarize(entries []Entry) Summary {
	s := Summary{TotalFunctions: len(entries)}
	if len(entries) == 0 {
		return s
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.Crap
	}
	sort.Float64s(scores)

	s.MeanScore = stat.Mean(scores, nil)
	s.MaxScore = scores[len(scores)-1]
	s.P50Score = stat.Quantile(0.50, stat.Empirical, scores, nil)
	s.P90Score = stat.Quantile(0.90, stat.Empirical, scores, nil)
	s.P95Score = stat.Quantile(0.95, stat.Empirical, scores, nil)

	return s
}
