package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellstats/pkg/contracts/domain"
)

func device(oem, model string) domain.Device {
	return domain.Device{OEM: oem, Model: model}
}

func withWeight(d domain.Device, grams float64) domain.Device {
	d.BodyWeight = &grams
	return d
}

func withYears(d domain.Device, announced, released int) domain.Device {
	d.LaunchAnnounced = &announced
	d.ReleaseYear = &released
	return d
}

func withReleaseYear(d domain.Device, released int) domain.Device {
	d.ReleaseYear = &released
	return d
}

func withSensors(d domain.Device, count int) domain.Device {
	d.SensorCount = count
	return d
}

func withSize(d domain.Device, inches float64) domain.Device {
	d.DisplaySize = &inches
	return d
}

func TestTopOEMByWeight(t *testing.T) {
	agg := Fold([]domain.Device{
		withWeight(device("A", "a1"), 100),
		withWeight(device("A", "a2"), 200),
		withWeight(device("B", "b1"), 300),
		device("C", "c1"), // no weight, excluded from comparison
	})

	report := agg.Report()
	require.NotNil(t, report.TopOEMByWeight)
	assert.Equal(t, "B", report.TopOEMByWeight.OEM)
	assert.InDelta(t, 300.0, report.TopOEMByWeight.Average, 1e-9)
	assert.Equal(t, 1, report.TopOEMByWeight.Count)
}

func TestTopOEMByWeight_TieGoesToFirstEncountered(t *testing.T) {
	agg := Fold([]domain.Device{
		withWeight(device("First", "f1"), 150),
		withWeight(device("Second", "s1"), 150),
	})

	report := agg.Report()
	require.NotNil(t, report.TopOEMByWeight)
	assert.Equal(t, "First", report.TopOEMByWeight.OEM)
}

func TestTopOEMByWeight_NoWeightsAtAll(t *testing.T) {
	agg := Fold([]domain.Device{
		device("A", "a1"),
		device("B", "b1"),
	})

	report := agg.Report()
	assert.Nil(t, report.TopOEMByWeight)
	assert.Nil(t, report.MeanBodyWeight)
	assert.Nil(t, report.MedianBodyWeight)
}

func TestYearMismatches(t *testing.T) {
	agg := Fold([]domain.Device{
		withYears(device("Apple", "iPhone"), 2007, 2008),
		withYears(device("Nokia", "3310"), 2000, 2000),
		withReleaseYear(device("HTC", "One"), 2013), // announced unknown
		withYears(device("Apple", "iPhone"), 2007, 2008), // exact duplicate row
	})

	report := agg.Report()
	require.Len(t, report.YearMismatches, 2)
	assert.Equal(t, domain.MismatchPair{OEM: "Apple", Model: "iPhone", AnnouncedYear: 2007, ReleaseYear: 2008}, report.YearMismatches[0])
	assert.Equal(t, report.YearMismatches[0], report.YearMismatches[1], "duplicates preserved, not deduplicated")
}

func TestYearMismatches_EmptyIsNotNil(t *testing.T) {
	report := Fold(nil).Report()
	require.NotNil(t, report.YearMismatches)
	assert.Empty(t, report.YearMismatches)
}

func TestSingleSensorCount(t *testing.T) {
	agg := Fold([]domain.Device{
		withSensors(device("A", "a1"), 1),
		withSensors(device("B", "b1"), 3),
		withSensors(device("C", "c1"), 0),
		withSensors(device("D", "d1"), 1),
	})

	assert.Equal(t, 2, agg.Report().SingleSensorCount)
}

func TestYearHistogramAndMode(t *testing.T) {
	var devices []domain.Device
	for i := 0; i < 3; i++ {
		devices = append(devices, withReleaseYear(device("A", "a"), 2015))
	}
	devices = append(devices, withReleaseYear(device("B", "b"), 2016))
	for i := 0; i < 5; i++ {
		devices = append(devices, withReleaseYear(device("C", "c"), 2019))
	}
	// Years at or before 1999 stay out of the histogram.
	devices = append(devices, withReleaseYear(device("D", "d"), 1999))
	devices = append(devices, withReleaseYear(device("E", "e"), 1995))
	devices = append(devices, device("F", "f")) // unknown year

	report := Fold(devices).Report()

	assert.Equal(t, []domain.YearCount{
		{Year: 2015, Count: 3},
		{Year: 2016, Count: 1},
		{Year: 2019, Count: 5},
	}, report.YearHistogram)

	require.NotNil(t, report.ModeYear)
	assert.Equal(t, 2019, report.ModeYear.Year)
	assert.Equal(t, 5, report.ModeYear.Count)

	sum := 0
	for _, bucket := range report.YearHistogram {
		sum += bucket.Count
	}
	assert.Equal(t, 9, sum, "histogram counts only post-1999 devices")
}

func TestModeYear_TieGoesToSmallestYear(t *testing.T) {
	report := Fold([]domain.Device{
		withReleaseYear(device("A", "a"), 2018),
		withReleaseYear(device("B", "b"), 2018),
		withReleaseYear(device("C", "c"), 2005),
		withReleaseYear(device("D", "d"), 2005),
	}).Report()

	require.NotNil(t, report.ModeYear)
	assert.Equal(t, 2005, report.ModeYear.Year)
	assert.Equal(t, 2, report.ModeYear.Count)
}

func TestMostCommonOEM(t *testing.T) {
	report := Fold([]domain.Device{
		device("Nokia", "a"),
		device("Samsung", "b"),
		device("Nokia", "c"),
	}).Report()

	assert.Equal(t, "Nokia", report.MostCommonOEM)
}

func TestMostCommonOEM_TieGoesToFirstEncountered(t *testing.T) {
	report := Fold([]domain.Device{
		device("Samsung", "a"),
		device("Nokia", "b"),
		device("Samsung", "c"),
		device("Nokia", "d"),
	}).Report()

	assert.Equal(t, "Samsung", report.MostCommonOEM)
}

func TestMostCommonDisplaySize(t *testing.T) {
	report := Fold([]domain.Device{
		withSize(device("A", "a"), 6.1),
		withSize(device("B", "b"), 6.1),
		withSize(device("C", "c"), 5.0),
	}).Report()

	require.NotNil(t, report.MostCommonDisplaySize)
	assert.InDelta(t, 6.1, *report.MostCommonDisplaySize, 1e-9)
}

func TestWeightDistribution(t *testing.T) {
	report := Fold([]domain.Device{
		withWeight(device("A", "a"), 100),
		withWeight(device("B", "b"), 200),
		withWeight(device("C", "c"), 150),
		device("D", "d"),
	}).Report()

	require.NotNil(t, report.MeanBodyWeight)
	assert.InDelta(t, 150.0, *report.MeanBodyWeight, 1e-9)
	require.NotNil(t, report.MedianBodyWeight)
	assert.InDelta(t, 150.0, *report.MedianBodyWeight, 1e-9)
}

func TestMerge_MatchesSequentialFold(t *testing.T) {
	devices := []domain.Device{
		withWeight(withYears(device("Apple", "iPhone"), 2007, 2008), 135),
		withWeight(device("Apple", "iPhone 3G"), 133),
		withSensors(withReleaseYear(device("Nokia", "3310"), 2000), 1),
		withWeight(withSize(device("Samsung", "Galaxy"), 6.1), 170),
		withYears(device("HTC", "One"), 2013, 2014),
		withWeight(device("Samsung", "Note"), 170),
	}

	sequential := Fold(devices).Report()

	left := Fold(devices[:3])
	right := Fold(devices[3:])
	left.Merge(right)
	merged := left.Report()

	assert.Equal(t, sequential, merged)
}

func TestTotal(t *testing.T) {
	agg := Fold([]domain.Device{device("A", "a"), device("B", "b")})
	assert.Equal(t, 2, agg.Total())
}
