package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Uploaded resumes and contracts arrive as PDF, DOCX or plain text. Text
// pulls a plain-text body out of any of them so the agents only ever see
// strings.

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrEmptyDocument is returned when extraction succeeds but yields no text,
// typically a scanned PDF with no text layer.
var ErrEmptyDocument = fmt.Errorf("document contains no extractable text")

// Text extracts plain text from data according to its MIME type.
func Text(mime string, data []byte) (string, error) {
	// Strip parameters such as "; charset=utf-8".
	if idx := strings.IndexByte(mime, ';'); idx != -1 {
		mime = mime[:idx]
	}
	mime = strings.TrimSpace(mime)

	var (
		text string
		err  error
	)
	switch mime {
	case mimeText:
		text = string(data)
	case mimePDF:
		text, err = pdfText(data)
	case mimeDocx:
		text, err = docxText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", mime)
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the whole document.
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
