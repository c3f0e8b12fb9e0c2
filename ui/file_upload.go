package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"doc-chat/document"
	"doc-chat/utils"
)

// openDocument shows the PDF picker and loads the chosen file into a
// fresh session. Extraction runs off the UI thread.
func (a *App) openDocument() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("Failed to open file: " + err.Error())
			return
		}
		if reader == nil {
			return // user cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		a.loadDocument(path)
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	fileDialog.Show()
}

// loadDocument extracts the PDF and replaces the active session.
func (a *App) loadDocument(path string) {
	utils.SafeGo(a.logger, "loadDocument", func() {
		doc, err := a.extractor.Extract(path)

		fyne.Do(func() {
			if err != nil {
				a.showExtractionError(err)
				return
			}

			if err := a.controller.LoadDocument(doc); err != nil {
				a.showError("Failed to start session: " + err.Error())
				return
			}

			a.chatView.SetDocument(doc.FileName, doc.Pages)
			a.showInfo("Loaded " + doc.FileName + ". Ask a question about it below.")
		})
	})
}

// showExtractionError maps each extraction failure to its own notice.
func (a *App) showExtractionError(err error) {
	switch {
	case errors.Is(err, document.ErrNotPDF):
		a.showError("That file is not a PDF. Choose a .pdf file.")
	case errors.Is(err, document.ErrTooLarge):
		a.showError("That PDF is over the 10 MB limit.")
	case errors.Is(err, document.ErrEmptyDocument):
		a.showError("No text could be extracted from that PDF. Scanned documents are not supported.")
	default:
		a.showError("Failed to read PDF: " + err.Error())
	}
}
