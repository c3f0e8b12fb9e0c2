package document

import "errors"

// Document holds the extracted text of one loaded file. It is immutable
// for the life of a session and replaced wholesale on a new upload.
type Document struct {
	RawText  string
	FileName string // display only
	Pages    int
}

// Extraction failure cases, each surfaced to the user as a distinct notice.
var (
	ErrNotPDF        = errors.New("not a PDF file")
	ErrTooLarge      = errors.New("file exceeds the 10 MB limit")
	ErrEmptyDocument = errors.New("no text could be extracted from this PDF")
)

// Extractor produces a Document from a file on disk. The chat layer
// consumes this interface; the PDF implementation lives in pdf.go.
type Extractor interface {
	Extract(path string) (*Document, error)
}
