// Package stats folds the normalized device stream into the fixed set of
// aggregates the pipeline reports on. The fold is a single pass with
// independent accumulators; no aggregate ever looks at another's state.
package stats

import (
	"sort"

	"github.com/montanaflynn/stats"

	"cellstats/pkg/contracts/domain"
)

// weightAccum is the running (sum, count) pair for one manufacturer.
type weightAccum struct {
	sum   float64
	count int
}

// Aggregator accumulates the report statistics over a device stream.
// Not safe for concurrent use; for parallel folds give each worker its own
// Aggregator and combine them with Merge.
type Aggregator struct {
	total int

	weightByOEM map[string]*weightAccum
	oemCounts   map[string]int
	// oemOrder remembers first-encounter order, the tie-break for both the
	// highest-average-weight and most-common-OEM answers.
	oemOrder []string

	mismatches []domain.MismatchPair

	singleSensor int

	yearCounts map[int]int

	sizeCounts map[float64]int

	weights []float64
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		weightByOEM: make(map[string]*weightAccum),
		oemCounts:   make(map[string]int),
		yearCounts:  make(map[int]int),
		sizeCounts:  make(map[float64]int),
	}
}

// Add folds one device into every accumulator.
func (a *Aggregator) Add(d domain.Device) {
	a.total++

	if _, seen := a.oemCounts[d.OEM]; !seen {
		a.oemOrder = append(a.oemOrder, d.OEM)
	}
	a.oemCounts[d.OEM]++

	if d.BodyWeight != nil {
		accum := a.weightByOEM[d.OEM]
		if accum == nil {
			accum = &weightAccum{}
			a.weightByOEM[d.OEM] = accum
		}
		accum.sum += *d.BodyWeight
		accum.count++
		a.weights = append(a.weights, *d.BodyWeight)
	}

	if d.YearMismatch() {
		a.mismatches = append(a.mismatches, domain.MismatchPair{
			OEM:           d.OEM,
			Model:         d.Model,
			AnnouncedYear: *d.LaunchAnnounced,
			ReleaseYear:   *d.ReleaseYear,
		})
	}

	if d.SensorCount == 1 {
		a.singleSensor++
	}

	if d.ReleaseYear != nil && *d.ReleaseYear > 1999 {
		a.yearCounts[*d.ReleaseYear]++
	}

	if d.DisplaySize != nil {
		a.sizeCounts[*d.DisplaySize]++
	}
}

// Fold runs the sequential reference fold over a device slice.
func Fold(devices []domain.Device) *Aggregator {
	a := New()
	for _, d := range devices {
		a.Add(d)
	}
	return a
}

// Merge folds another Aggregator into this one. Partitioned folds merge
// left to right in partition order, which keeps first-encounter tie-breaks
// and mismatch ordering identical to the sequential fold.
func (a *Aggregator) Merge(other *Aggregator) {
	a.total += other.total

	for _, oem := range other.oemOrder {
		if _, seen := a.oemCounts[oem]; !seen {
			a.oemOrder = append(a.oemOrder, oem)
		}
		a.oemCounts[oem] += other.oemCounts[oem]
	}

	for oem, theirs := range other.weightByOEM {
		accum := a.weightByOEM[oem]
		if accum == nil {
			accum = &weightAccum{}
			a.weightByOEM[oem] = accum
		}
		accum.sum += theirs.sum
		accum.count += theirs.count
	}

	a.mismatches = append(a.mismatches, other.mismatches...)
	a.singleSensor += other.singleSensor

	for year, count := range other.yearCounts {
		a.yearCounts[year] += count
	}
	for size, count := range other.sizeCounts {
		a.sizeCounts[size] += count
	}

	a.weights = append(a.weights, other.weights...)
}

// Report assembles the final aggregate results. Run accounting fields
// (TotalRows, SkippedRows, GeneratedAt) are the caller's responsibility.
func (a *Aggregator) Report() domain.Report {
	report := domain.Report{
		YearMismatches:    a.mismatches,
		SingleSensorCount: a.singleSensor,
	}
	if report.YearMismatches == nil {
		report.YearMismatches = []domain.MismatchPair{}
	}

	report.TopOEMByWeight = a.topOEMByWeight()
	report.YearHistogram, report.ModeYear = a.yearHistogram()
	report.MostCommonOEM = a.mostCommonOEM()
	report.MostCommonDisplaySize = a.mostCommonDisplaySize()
	report.MeanBodyWeight, report.MedianBodyWeight = a.weightDistribution()

	return report
}

// topOEMByWeight returns the manufacturer with the highest average body
// weight. Manufacturers without a single parseable weight are excluded;
// exact ties go to the first-encountered manufacturer.
func (a *Aggregator) topOEMByWeight() *domain.OEMWeight {
	var top *domain.OEMWeight
	for _, oem := range a.oemOrder {
		accum := a.weightByOEM[oem]
		if accum == nil || accum.count == 0 {
			continue
		}
		avg := accum.sum / float64(accum.count)
		if top == nil || avg > top.Average {
			top = &domain.OEMWeight{OEM: oem, Average: avg, Count: accum.count}
		}
	}
	return top
}

// yearHistogram returns the post-1999 release-year buckets sorted by year,
// plus the mode. Ties on the mode go to the smallest year.
func (a *Aggregator) yearHistogram() ([]domain.YearCount, *domain.YearCount) {
	if len(a.yearCounts) == 0 {
		return []domain.YearCount{}, nil
	}

	years := make([]int, 0, len(a.yearCounts))
	for year := range a.yearCounts {
		years = append(years, year)
	}
	sort.Ints(years)

	histogram := make([]domain.YearCount, 0, len(years))
	var mode *domain.YearCount
	for _, year := range years {
		bucket := domain.YearCount{Year: year, Count: a.yearCounts[year]}
		histogram = append(histogram, bucket)
		if mode == nil || bucket.Count > mode.Count {
			b := bucket
			mode = &b
		}
	}

	return histogram, mode
}

// mostCommonOEM returns the manufacturer with the most dataset rows, ties
// going to the first encountered.
func (a *Aggregator) mostCommonOEM() string {
	var best string
	bestCount := 0
	for _, oem := range a.oemOrder {
		if a.oemCounts[oem] > bestCount {
			best = oem
			bestCount = a.oemCounts[oem]
		}
	}
	return best
}

// mostCommonDisplaySize returns the modal display size, ties going to the
// smallest size.
func (a *Aggregator) mostCommonDisplaySize() *float64 {
	if len(a.sizeCounts) == 0 {
		return nil
	}

	sizes := make([]float64, 0, len(a.sizeCounts))
	for size := range a.sizeCounts {
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)

	best := sizes[0]
	bestCount := a.sizeCounts[best]
	for _, size := range sizes[1:] {
		if a.sizeCounts[size] > bestCount {
			best = size
			bestCount = a.sizeCounts[size]
		}
	}
	return &best
}

// weightDistribution computes mean and median over all parseable weights.
func (a *Aggregator) weightDistribution() (*float64, *float64) {
	if len(a.weights) == 0 {
		return nil, nil
	}

	mean, err := stats.Mean(a.weights)
	if err != nil {
		return nil, nil
	}
	median, err := stats.Median(a.weights)
	if err != nil {
		return nil, nil
	}

	return &mean, &median
}

// Total returns the number of devices folded so far.
func (a *Aggregator) Total() int {
	return a.total
}
