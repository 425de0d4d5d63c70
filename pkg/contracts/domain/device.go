package domain

import (
	"fmt"
)

// Device represents one normalized row of the handset dataset.
// Optional fields use pointers: nil means the source field was a
// placeholder or could not be parsed. Zero is a valid value and must
// never be used to encode absence, or averages and histograms would
// silently include bogus data points.
type Device struct {
	OEM             string   `json:"oem" csv:"OEM" validate:"required"`
	Model           string   `json:"model" csv:"Model" validate:"required"`
	LaunchAnnounced *int     `json:"launch_announced,omitempty" csv:"LaunchAnnounced"`
	ReleaseYear     *int     `json:"release_year,omitempty" csv:"ReleaseYear"`
	BodyWeight      *float64 `json:"body_weight_grams,omitempty" csv:"BodyWeightGrams"`
	DisplaySize     *float64 `json:"display_size_inches,omitempty" csv:"DisplaySizeInches"`
	SensorCount     int      `json:"sensor_count" csv:"SensorCount"`
}

// HasWeight reports whether the body weight was recoverable from the source row.
func (d *Device) HasWeight() bool {
	return d.BodyWeight != nil
}

// YearMismatch reports whether both years are known and disagree.
func (d *Device) YearMismatch() bool {
	return d.LaunchAnnounced != nil && d.ReleaseYear != nil && *d.LaunchAnnounced != *d.ReleaseYear
}

// Key returns a display identifier for log output. Models are not unique
// across the dataset, so this is not suitable as a map key.
func (d *Device) Key() string {
	return fmt.Sprintf("%s %s", d.OEM, d.Model)
}

// MismatchPair identifies a device announced in one year and released in
// another. Pairs are collected in input order and exact duplicates are kept,
// the dataset genuinely contains repeated rows.
type MismatchPair struct {
	OEM           string `json:"oem" csv:"OEM"`
	Model         string `json:"model" csv:"Model"`
	AnnouncedYear int    `json:"announced_year" csv:"AnnouncedYear"`
	ReleaseYear   int    `json:"release_year" csv:"ReleaseYear"`
}
