package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Read picks a reader from the file extension.
func Read(name, filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ReadCSV(name, r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(name, r)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file type %q", ErrUnreadable, name, filepath.Ext(filename))
	}
}

func ReadFile(name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	defer f.Close()
	return Read(name, path, f)
}

// WriteFile writes .xlsx for an .xlsx path and BOM-prefixed CSV otherwise.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		err = t.WriteXLSX(f)
	} else {
		err = t.WriteCSV(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
