package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bwsio "bsc-wallet-scanner/internal/io"
	"bsc-wallet-scanner/internal/scan"
)

// FileError indicates the destination file could not be created or written.
// The destination may be left in a partial state; the run is single-shot and
// user-invoked, so no atomic replace is attempted.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to write output file '%s': %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// WriteFile renders the transactions to the file at path, creating parent
// directories as needed and overwriting any existing content. The file is
// closed on every exit path.
func WriteFile(path string, transactions []scan.Transaction, mode Mode, now time.Time) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := bwsio.EnsureDir(dir); err != nil {
			return &FileError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	writeErr := Write(f, transactions, mode, now)
	closeErr := f.Close()

	if writeErr != nil {
		return &FileError{Path: path, Err: writeErr}
	}
	if closeErr != nil {
		return &FileError{Path: path, Err: closeErr}
	}

	return nil
}
