package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultBufSize = 64 * 1024

// WriteFile encodes rows in format and writes them to path. The file is
// written to a temporary sibling and renamed into place, so a failed export
// never leaves a truncated file behind.
func WriteFile(path, format string, rows []Row) error {
	enc, err := Get(format)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	w := bufio.NewWriterSize(tmp, defaultBufSize)
	if err := enc.Encode(w, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("export: flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: rename %s: %w", path, err)
	}
	return nil
}

// WriteFiles writes rows once per format to base plus the format's extension.
// Every format is attempted; failures are joined. It returns the paths written.
func WriteFiles(base string, formats []string, rows []Row) ([]string, error) {
	var (
		written []string
		errs    []error
	)
	for _, format := range formats {
		enc, err := Get(format)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		path := base + "." + enc.Extension()
		if err := WriteFile(path, format, rows); err != nil {
			errs = append(errs, err)
			continue
		}
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}
