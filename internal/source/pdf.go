package source

import (
	"bytes"
	"fmt"
	"io"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFLoader extracts the text layer of a PDF, one block per page.
type PDFLoader struct{}

func (l *PDFLoader) Load(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	w := &blockWriter{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		w.block(text)
	}
	return w.String(), nil
}
