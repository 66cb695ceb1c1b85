// Package seeder locates the CSV payload of a seed file on disk.
package seeder

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCSV is returned when a zip archive holds no .csv entry
var ErrNoCSV = errors.New("no csv file found in zip")

// Open returns a reader over the seed data at path.
// A .zip archive yields its first .csv entry; any other file is read as is.
func Open(path string) (io.ReadCloser, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return openFromZip(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	return file, nil
}

func openFromZip(zipPath string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to open file in zip: %w", err)
		}
		return &zipEntry{ReadCloser: rc, archive: r}, nil
	}

	r.Close()
	return nil, ErrNoCSV
}

// zipEntry closes the archive together with the entry
type zipEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipEntry) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
