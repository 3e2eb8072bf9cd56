package source

import (
	"io"
)

// TextLoader handles plain text.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
