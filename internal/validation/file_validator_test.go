package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellstats/internal/errors"
)

func TestValidateFile(t *testing.T) {
	v := NewFileValidator(slog.Default())
	dir := t.TempDir()

	path := filepath.Join(dir, "cells.csv")
	require.NoError(t, os.WriteFile(path, []byte("oem,model\n"), 0644))

	assert.NoError(t, v.ValidateFile(path))

	err := v.ValidateFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))

	err = v.ValidateFile(dir)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestValidateDataset(t *testing.T) {
	v := NewFileValidator(slog.Default())
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "cells.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("oem,model\n"), 0644))
	xlsxPath := filepath.Join(dir, "cells.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, []byte("fake"), 0644))
	lockPath := filepath.Join(dir, "~$cells.xlsx")
	require.NoError(t, os.WriteFile(lockPath, []byte("fake"), 0644))

	tests := []struct {
		name    string
		path    string
		format  string
		wantErr bool
	}{
		{name: "csv ok", path: csvPath, format: "csv"},
		{name: "xlsx ok", path: xlsxPath, format: "xlsx"},
		{name: "csv file with xlsx format", path: csvPath, format: "xlsx", wantErr: true},
		{name: "excel lock file", path: lockPath, format: "xlsx", wantErr: true},
		{name: "xlsx file with csv format only warns", path: xlsxPath, format: "csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDataset(tt.path, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(slog.Default())
	dir := t.TempDir()

	created := filepath.Join(dir, "reports", "nested")
	require.NoError(t, v.ValidateOutputDirectory(created))
	info, err := os.Stat(created)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	filePath := filepath.Join(dir, "afile")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))
	assert.Error(t, v.ValidateOutputDirectory(filePath))
}
