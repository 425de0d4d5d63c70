package domain

import (
	"time"
)

// OEMWeight holds the final average body weight for one manufacturer.
type OEMWeight struct {
	OEM     string  `json:"oem" csv:"OEM"`
	Average float64 `json:"average_grams" csv:"AverageGrams"`
	Count   int     `json:"device_count" csv:"DeviceCount"`
}

// YearCount is one bucket of the post-1999 release-year histogram.
type YearCount struct {
	Year  int `json:"year" csv:"Year"`
	Count int `json:"count" csv:"Count"`
}

// Report is the complete output contract of one aggregation run.
type Report struct {
	// Highest average body weight by manufacturer. Nil when no device
	// carried a parseable weight.
	TopOEMByWeight *OEMWeight `json:"top_oem_by_weight,omitempty"`

	// Devices announced in one year and released in another, in input order.
	YearMismatches []MismatchPair `json:"year_mismatches"`

	// Devices reporting exactly one feature sensor.
	SingleSensorCount int `json:"single_sensor_count"`

	// Release-year histogram restricted to years after 1999, sorted by
	// year ascending, plus its mode.
	YearHistogram []YearCount `json:"year_histogram"`
	ModeYear      *YearCount  `json:"mode_year,omitempty"`

	// Frequency winners across the whole dataset.
	MostCommonOEM         string   `json:"most_common_oem,omitempty"`
	MostCommonDisplaySize *float64 `json:"most_common_display_size,omitempty"`

	// Body-weight distribution over devices with a parseable weight.
	MeanBodyWeight   *float64 `json:"mean_body_weight,omitempty"`
	MedianBodyWeight *float64 `json:"median_body_weight,omitempty"`

	// Run accounting.
	TotalRows   int       `json:"total_rows"`
	SkippedRows int       `json:"skipped_rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
