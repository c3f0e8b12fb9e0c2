package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"doc-chat/chat"
	"doc-chat/llm"
	"doc-chat/utils"
)

// ChatView renders the conversation for the active document session.
type ChatView struct {
	app *App

	documentLabel     *widget.Label
	messagesContainer *fyne.Container
	scroll            *container.Scroll
	inputEntry        *widget.Entry
	sendButton        *widget.Button

	thinking *fyne.Container // placeholder row while a request is in flight
}

// NewChatView creates the chat view
func NewChatView(app *App) *ChatView {
	cv := &ChatView{app: app}

	cv.documentLabel = widget.NewLabel("No document loaded")
	cv.documentLabel.TextStyle = fyne.TextStyle{Italic: true}

	cv.messagesContainer = container.NewVBox()
	cv.scroll = container.NewScroll(cv.messagesContainer)

	cv.inputEntry = widget.NewEntry()
	cv.inputEntry.SetPlaceHolder("Ask a question about the document...")
	cv.inputEntry.OnSubmitted = func(string) {
		cv.sendMessage()
	}

	cv.sendButton = widget.NewButton("Send", func() {
		cv.sendMessage()
	})
	cv.sendButton.Importance = widget.HighImportance

	return cv
}

// Build returns the chat view's canvas object
func (cv *ChatView) Build() fyne.CanvasObject {
	inputBar := container.NewBorder(nil, nil, nil, cv.sendButton, cv.inputEntry)
	return container.NewBorder(nil, inputBar, nil, nil, cv.scroll)
}

// SetDocument resets the view for a freshly loaded document.
func (cv *ChatView) SetDocument(fileName string, pages int) {
	cv.documentLabel.SetText(fmt.Sprintf("%s (%d pages)", fileName, pages))
	cv.documentLabel.TextStyle = fyne.TextStyle{Bold: true}
	cv.messagesContainer.RemoveAll()
	cv.thinking = nil
	cv.messagesContainer.Refresh()
}

// sendMessage runs one submission cycle. The user bubble is shown
// immediately; the authoritative history comes back from the
// controller when the call resolves.
func (cv *ChatView) sendMessage() {
	question := strings.TrimSpace(cv.inputEntry.Text)
	if question == "" {
		return
	}
	if cv.app.controller.Session() == nil {
		cv.app.showInfo("Open a PDF first, then ask away.")
		return
	}
	if !cv.app.controller.HasCredential() {
		cv.app.showInfo("No API key configured. Add one in Settings.")
		return
	}

	cv.inputEntry.SetText("")
	cv.setSending(true)

	// Optimistic user bubble plus a thinking placeholder; both get
	// replaced by the controller snapshot when the call returns.
	cv.appendTurnUI(chat.Turn{Sender: chat.SenderUser, Text: question})
	cv.showThinking()

	utils.SafeGo(cv.app.logger, "sendMessage", func() {
		_, err := cv.app.controller.Ask(context.Background(), question)

		fyne.Do(func() {
			cv.setSending(false)
			cv.refreshTurns()

			switch {
			case err == nil:
			case errors.Is(err, chat.ErrStaleSession):
				// The document changed mid-flight; nothing to show.
			case errors.Is(err, chat.ErrBusy):
				cv.app.showInfo("Still waiting on the previous answer.")
			case errors.Is(err, llm.ErrMissingCredential):
				cv.app.showInfo("No API key configured. Add one in Settings.")
			default:
				cv.app.showError(err.Error())
			}
		})
	})
}

// setSending gates the input while a request is in flight.
func (cv *ChatView) setSending(sending bool) {
	if sending {
		cv.inputEntry.Disable()
		cv.sendButton.Disable()
	} else {
		cv.inputEntry.Enable()
		cv.sendButton.Enable()
	}
}

// showThinking appends the in-flight placeholder row.
func (cv *ChatView) showThinking() {
	label := widget.NewLabel("Thinking...")
	label.TextStyle = fyne.TextStyle{Italic: true}
	cv.thinking = container.NewVBox(label)
	cv.messagesContainer.Add(cv.thinking)
	cv.messagesContainer.Refresh()
	cv.scroll.ScrollToBottom()
}

// refreshTurns rebuilds the message list from the controller's history,
// which is the source of truth after every cycle.
func (cv *ChatView) refreshTurns() {
	cv.messagesContainer.RemoveAll()
	cv.thinking = nil
	for _, turn := range cv.app.controller.Turns() {
		cv.appendTurnUI(turn)
	}
	cv.messagesContainer.Refresh()
	cv.scroll.ScrollToBottom()
}

// appendTurnUI adds one turn to the message list.
func (cv *ChatView) appendTurnUI(turn chat.Turn) {
	var roleLabel *widget.Label
	if turn.Sender == chat.SenderUser {
		roleLabel = widget.NewLabel("🧑 You")
	} else {
		roleLabel = widget.NewLabel("🤖 Assistant")
	}
	roleLabel.TextStyle = fyne.TextStyle{Bold: true}

	body := container.NewVBox(roleLabel)

	if turn.Text != "" {
		if turn.Sender == chat.SenderAssistant {
			richText := widget.NewRichTextFromMarkdown(turn.Text)
			richText.Wrapping = fyne.TextWrapWord
			body.Add(container.NewPadded(richText))
		} else {
			label := widget.NewLabel(turn.Text)
			label.Wrapping = fyne.TextWrapWord
			body.Add(container.NewPadded(label))
		}
	}

	if turn.Chart != nil {
		body.Add(container.NewPadded(NewChartView(turn.Chart)))
	}

	body.Add(widget.NewSeparator())
	cv.messagesContainer.Add(body)
}
