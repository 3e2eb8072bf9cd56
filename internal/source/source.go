// Package source turns input documents into the plain educational text that
// is sent for extraction.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxFileBytes caps how much of an input file is read.
const MaxFileBytes = 32 << 20

// ErrUnsupported is returned for file extensions with no loader.
var ErrUnsupported = errors.New("unsupported file type")

// ErrTooLarge is returned when an input exceeds MaxFileBytes.
var ErrTooLarge = errors.New("input file too large")

// Loader converts raw document bytes into plain text.
type Loader interface {
	Load(r io.Reader) (string, error)
}

// SupportedExtensions lists file extensions with a loader.
var SupportedExtensions = []string{".txt", ".text", ".md", ".markdown", ".csv", ".html", ".htm", ".pdf", ".docx"}

// ForFile returns the loader for a filename. Names without an extension
// are read as plain text.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".text":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupported reports whether filename has a loader.
func IsSupported(filename string) bool {
	_, err := ForFile(filename)
	return err == nil
}

// Load reads r with the loader chosen by filename and tidies the result.
func Load(r io.Reader, filename string) (string, error) {
	loader, err := ForFile(filename)
	if err != nil {
		return "", err
	}

	limited := &io.LimitedReader{R: r, N: MaxFileBytes + 1}
	text, err := loader.Load(limited)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", filepath.Base(filename), err)
	}
	if limited.N <= 0 {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, filepath.Base(filename), MaxFileBytes)
	}
	return Normalize(text), nil
}

// LoadFile loads the file at path. A path of "-" reads plain text from stdin.
func LoadFile(path string) (string, error) {
	if path == "-" {
		return Load(os.Stdin, "stdin.txt")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Load(f, path)
}

var blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// Normalize converts line endings, trims trailing spaces and collapses runs
// of blank lines to one.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\f")
	}
	text = strings.Join(lines, "\n")

	text = blankRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// blockWriter joins text blocks with blank lines.
type blockWriter struct {
	b strings.Builder
}

func (w *blockWriter) block(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if w.b.Len() > 0 {
		w.b.WriteString("\n\n")
	}
	w.b.WriteString(s)
}

func (w *blockWriter) String() string {
	return w.b.String()
}
