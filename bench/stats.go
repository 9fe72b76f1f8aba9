package bench

// This file contains the statistics used to compare repeated rounds of two
// variants of the same experiment.

import (
	"math"
	"slices"

	"golang.org/x/perf/benchmath"
)

// DefaultConfidence is the confidence level of summary ranges.
const DefaultConfidence = 0.95

// Summary describes the distribution of per-round averages.
type Summary struct {
	Center   float64  `json:"center"`
	// Lo and Hi bound the confidence interval of Center. They are nil when
	// there are too few samples for a finite interval, see Warnings.
	Lo       *float64 `json:"lo,omitempty"`
	Hi       *float64 `json:"hi,omitempty"`
	N        int      `json:"n"`
	Warnings []string `json:"warnings,omitempty"`
}

// Comparison describes how a candidate variant relates to a baseline.
type Comparison struct {
	// P is the p-value of the Mann-Whitney U-test between both samples.
	P     float64 `json:"p"`
	Alpha float64 `json:"alpha"`
	// Delta is the change of the candidate center relative to the baseline center, in percent.
	Delta       float64  `json:"delta_pct"`
	Significant bool     `json:"significant"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Summarize computes the median and its confidence interval without
// assuming any particular distribution.
func Summarize(samples []float64, confidence float64) Summary {
	// NewSample sorts the values in place.
	sample := benchmath.NewSample(slices.Clone(samples), &benchmath.DefaultThresholds)
	s := benchmath.AssumeNothing.Summary(sample, confidence)

	return Summary{
		Center:   s.Center,
		Lo:       finite(s.Lo),
		Hi:       finite(s.Hi),
		N:        len(samples),
		Warnings: errorStrings(s.Warnings),
	}
}

// Compare tests whether candidate differs from baseline.
func Compare(baseline, candidate []float64) Comparison {
	thresholds := benchmath.DefaultThresholds
	base := benchmath.NewSample(slices.Clone(baseline), &thresholds)
	cand := benchmath.NewSample(slices.Clone(candidate), &thresholds)

	c := benchmath.AssumeNothing.Compare(base, cand)

	baseCenter := benchmath.AssumeNothing.Summary(base, DefaultConfidence).Center
	candCenter := benchmath.AssumeNothing.Summary(cand, DefaultConfidence).Center

	var delta float64
	if baseCenter != 0 {
		delta = (candCenter - baseCenter) / baseCenter * 100
	}

	return Comparison{
		P:           c.P,
		Alpha:       c.Alpha,
		Delta:       delta,
		Significant: c.P < c.Alpha,
		Warnings:    errorStrings(c.Warnings),
	}
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
