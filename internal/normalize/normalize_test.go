package normalize

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellstats/internal/config"
	"cellstats/internal/errors"
	"cellstats/internal/shared/testutil"
	"cellstats/internal/source"
)

func testColumns() config.ColumnsConfig {
	return config.ColumnsConfig{
		OEM:             "oem",
		Model:           "model",
		LaunchAnnounced: "launch_announced",
		LaunchStatus:    "launch_status",
		BodyWeight:      "body_weight",
		DisplaySize:     "display_size",
		FeaturesSensors: "features_sensors",
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := New(slog.Default(), testColumns())

	record := source.Record{
		"oem":              "Apple",
		"model":            "iPhone",
		"launch_announced": "2007, January",
		"launch_status":    "2008, Released",
		"body_weight":      "135.6 g",
		"display_size":     "3.5 inches",
		"features_sensors": "Accelerometer, gyro, proximity",
	}

	device, err := n.Normalize(record)
	require.NoError(t, err)

	assert.Equal(t, "Apple", device.OEM)
	assert.Equal(t, "iPhone", device.Model)
	require.NotNil(t, device.LaunchAnnounced)
	assert.Equal(t, 2007, *device.LaunchAnnounced)
	require.NotNil(t, device.ReleaseYear)
	assert.Equal(t, 2008, *device.ReleaseYear)
	require.NotNil(t, device.BodyWeight)
	assert.InDelta(t, 135.6, *device.BodyWeight, 1e-9)
	require.NotNil(t, device.DisplaySize)
	assert.InDelta(t, 3.5, *device.DisplaySize, 1e-9)
	assert.Equal(t, 3, device.SensorCount)
	assert.True(t, device.YearMismatch())
}

func TestNormalizer_PlaceholdersBecomeAbsent(t *testing.T) {
	n := New(slog.Default(), testColumns())

	record := source.Record{
		"oem":              "Nokia",
		"model":            "3310",
		"launch_announced": "-",
		"launch_status":    "Discontinued",
		"body_weight":      "-",
		"display_size":     "",
		"features_sensors": "-",
	}

	device, err := n.Normalize(record)
	require.NoError(t, err)

	assert.Nil(t, device.LaunchAnnounced)
	assert.Nil(t, device.ReleaseYear)
	assert.Nil(t, device.BodyWeight)
	assert.Nil(t, device.DisplaySize)
	assert.Equal(t, 0, device.SensorCount)
	assert.False(t, device.YearMismatch())
	assert.False(t, device.HasWeight())
}

func TestNormalizer_MalformedRows(t *testing.T) {
	n := New(slog.Default(), testColumns())

	tests := []struct {
		name   string
		record source.Record
	}{
		{name: "missing oem", record: source.Record{"model": "Mystery"}},
		{name: "missing model", record: source.Record{"oem": "Acme"}},
		{name: "whitespace identity", record: source.Record{"oem": "  ", "model": "\t"}},
		{name: "empty record", record: source.Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.record)
			require.Error(t, err)

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, errors.ErrTypeParsing, appErr.Type)
			assert.False(t, errors.IsFatal(err))
		})
	}
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	n := New(logger, testColumns())

	records := []source.Record{
		{"oem": "Apple", "model": "iPhone", "body_weight": "135 g"},
		{"oem": "", "model": "Orphan"},
		{"oem": "Nokia", "model": "3310", "body_weight": "-"},
	}

	result := n.NormalizeAll(context.Background(), records)

	require.Len(t, result.Devices, 2)
	assert.Equal(t, 1, result.SkippedRows)
	assert.Equal(t, "Apple", result.Devices[0].OEM, "input order preserved")
	assert.Equal(t, "Nokia", result.Devices[1].OEM)

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "skipping malformed row")
	assert.True(t, handler.ContainsAttr("model", "Orphan"))
}

func TestNormalizer_NilLoggerUsesDefault(t *testing.T) {
	n := New(nil, testColumns())
	assert.NotNil(t, n.logger)
}

func TestNormalizer_CustomColumns(t *testing.T) {
	columns := testColumns()
	columns.OEM = "manufacturer"
	columns.Model = "device_name"
	n := New(slog.Default(), columns)

	device, err := n.Normalize(source.Record{
		"manufacturer": "Sony",
		"device_name":  "Xperia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sony", device.OEM)
	assert.Equal(t, "Xperia", device.Model)
}
