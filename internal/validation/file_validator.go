// Package validation provides preflight checks on dataset files before the
// row source attempts to decode them.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cellstats/internal/errors"
)

// FileValidator checks dataset files before ingestion
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that the path names a readable regular file.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewInputError(fmt.Sprintf("file %s does not exist", path), err)
	}
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		return errors.NewInputError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateDataset checks that the input file matches the configured format.
func (v *FileValidator) ValidateDataset(path, format string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch strings.ToLower(format) {
	case "csv":
		if ext != ".csv" && ext != ".txt" {
			v.logger.Warn("dataset extension does not match csv format",
				slog.String("file", path),
				slog.String("extension", ext))
		}
	case "xlsx":
		if ext != ".xlsx" && ext != ".xls" {
			return errors.NewInputError(
				fmt.Sprintf("file %s is not an Excel workbook (extension %s)", path, ext), nil)
		}
		// Office lock files look like workbooks but never decode.
		if strings.HasPrefix(filepath.Base(path), "~$") {
			return errors.NewInputError(
				fmt.Sprintf("file %s is a temporary Excel lock file", path), nil)
		}
	}

	return nil
}

// ValidateOutputDirectory ensures the report output directory exists and is
// writable, creating it when missing.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
		}
		v.logger.Info("created output directory", slog.String("directory", dir))
		return nil
	}
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to stat output directory %s", dir), err)
	}
	if !info.IsDir() {
		return errors.NewStorageError(fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}
