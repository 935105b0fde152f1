// =============================================================================
// Sales Computation - Input Loader
// =============================================================================
//
// This module reads an input file into a document.Value. The format is picked
// from the file extension:
//
//   .xlsx      -> workbook sheet (see workbook.go)
//   otherwise  -> JSON
//
// FAILURE CLASSES:
//   Every failure is returned as a *LoadError whose Kind is one of the
//   sentinels below, so callers can print a distinct diagnostic per class:
//
//   ErrFileNotFound  - the path does not exist
//   ErrInvalidFormat - the content does not parse as the expected format
//   ErrUnreadable    - the path exists but cannot be read (directory, permissions)
//
// =============================================================================

package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/computesales/internal/document"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidFormat = errors.New("invalid format")
	ErrUnreadable    = errors.New("cannot read file")
)

// Format names the decoder used for a file.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatXLSX Format = "XLSX"
)

// LoadError describes why an input file could not be loaded.
type LoadError struct {
	// Path is the offending input path as given by the user.
	Path string

	// Format is the decoder that was selected for the path.
	Format Format

	// Kind is one of ErrFileNotFound, ErrInvalidFormat, ErrUnreadable.
	Kind error

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Diagnostic returns the one-line console message for the failure.
func (e *LoadError) Diagnostic() string {
	switch e.Kind {
	case ErrFileNotFound:
		return fmt.Sprintf("Error: File not found -> %s", e.Path)
	case ErrInvalidFormat:
		return fmt.Sprintf("Error: Invalid %s format -> %s", e.Format, e.Path)
	default:
		return fmt.Sprintf("Error: Cannot read file -> %s", e.Path)
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Options controls how an input file is read.
type Options struct {
	// Sheet is the worksheet read from .xlsx files. Empty means the first
	// sheet. Ignored for JSON.
	Sheet string
}

// DetectFormat returns the decoder that Load will use for path.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatJSON
}

// Load reads and parses one input file.
//
// PARAMETERS:
//   - path: The input file path.
//   - opts: Format-specific options.
//
// RETURNS:
//   - The parsed document.
//   - A *LoadError if the file is missing, unreadable, or malformed.
func Load(path string, opts Options) (document.Value, error) {
	format := DetectFormat(path)

	info, err := os.Stat(path)
	if err != nil {
		return document.Value{}, classifyOSError(path, format, err)
	}
	if info.IsDir() {
		return document.Value{}, &LoadError{
			Path:   path,
			Format: format,
			Kind:   ErrUnreadable,
			Err:    errors.New("path is a directory"),
		}
	}

	if format == FormatXLSX {
		return loadWorkbook(path, opts.Sheet)
	}
	return loadJSON(path)
}

// utf8BOM is tolerated at the start of JSON files.
var utf8BOM = []byte("\xef\xbb\xbf")

func loadJSON(path string) (document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Value{}, classifyOSError(path, FormatJSON, err)
	}

	v, err := document.Parse(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return document.Value{}, &LoadError{
			Path:   path,
			Format: FormatJSON,
			Kind:   ErrInvalidFormat,
			Err:    err,
		}
	}

	return v, nil
}

func classifyOSError(path string, format Format, err error) error {
	kind := ErrUnreadable
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrFileNotFound
	}
	return &LoadError{Path: path, Format: format, Kind: kind, Err: err}
}
