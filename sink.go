package main

import (
	"fmt"
	"io"
	"os"
)

// emit hands the rendered report to the display, then persists the same
// bytes at logPath. The display always goes first so the operator sees the
// result even when the log file cannot be written.
func emit(report []byte, display io.Writer, logPath string) error {
	if _, err := display.Write(report); err != nil {
		return fmt.Errorf("writing report to display: %w", err)
	}
	if err := writeFile(logPath, report); err != nil {
		return &PersistenceError{Path: logPath, Err: err}
	}
	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}
