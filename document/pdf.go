package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxFileSize is the upload ceiling in bytes.
const maxFileSize = 10 * 1024 * 1024

// PDFExtractor extracts plain text from PDF files.
type PDFExtractor struct {
	maxFileSize int64
}

// NewPDFExtractor creates a PDF extractor with the default size limit.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{maxFileSize: maxFileSize}
}

// Extract validates the file and returns its extracted text. Non-PDF
// input, oversized files and PDFs that yield no text each fail with
// their own error so the UI can show distinct notices.
func (e *PDFExtractor) Extract(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.Size() > e.maxFileSize {
		return nil, ErrTooLarge
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, ErrNotPDF
	}
	if err := checkSignature(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return nil, fmt.Errorf("failed to read extracted text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return nil, ErrEmptyDocument
	}

	return &Document{
		RawText:  text,
		FileName: filepath.Base(path),
		Pages:    reader.NumPage(),
	}, nil
}

// checkSignature verifies the %PDF magic bytes so a renamed file does
// not get past the extension check.
func checkSignature(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := f.Read(header); err != nil {
		return ErrNotPDF
	}
	if string(header) != "%PDF" {
		return ErrNotPDF
	}
	return nil
}
