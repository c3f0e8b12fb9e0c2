package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SettingsView manages the provider selection and its API key.
type SettingsView struct {
	app *App

	providerSelect *widget.Select
	apiKeyEntry    *widget.Entry
	statusLabel    *widget.Label

	displayToName map[string]string // select label -> provider name
	popup         *widget.PopUp
}

// NewSettingsView creates a new settings view
func NewSettingsView(app *App) *SettingsView {
	sv := &SettingsView{
		app:           app,
		displayToName: make(map[string]string),
	}

	var labels []string
	for name, pc := range app.config.LLMProviders {
		label := pc.DisplayName
		if label == "" {
			label = name
		}
		sv.displayToName[label] = name
		labels = append(labels, label)
	}
	sort.Strings(labels)

	sv.providerSelect = widget.NewSelect(labels, func(label string) {
		// A different provider needs a different key; make that obvious
		// before anything is saved.
		if sv.displayToName[label] != sv.app.controller.Provider() {
			sv.apiKeyEntry.SetText("")
			sv.statusLabel.SetText("Switching provider clears the stored key. Enter a key for " + label + ".")
		}
	})

	sv.apiKeyEntry = widget.NewPasswordEntry()
	sv.apiKeyEntry.SetPlaceHolder("API Key")

	sv.statusLabel = widget.NewLabel("")
	sv.statusLabel.Wrapping = fyne.TextWrapWord

	return sv
}

// Show opens the settings dialog reflecting the current state.
func (sv *SettingsView) Show() {
	current := sv.app.controller.Provider()
	for label, name := range sv.displayToName {
		if name == current {
			sv.providerSelect.SetSelected(label)
			break
		}
	}
	sv.apiKeyEntry.SetText("")
	if sv.app.controller.HasCredential() {
		sv.statusLabel.SetText("A key is stored for this provider. Leave the field empty to keep it.")
	} else {
		sv.statusLabel.SetText("No key stored. Enter one to start chatting.")
	}

	saveButton := widget.NewButton("Save", func() {
		sv.save()
	})
	saveButton.Importance = widget.HighImportance

	cancelButton := widget.NewButton("Cancel", func() {
		sv.popup.Hide()
	})

	content := container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Provider", sv.providerSelect),
			widget.NewFormItem("API Key", sv.apiKeyEntry),
		),
		sv.statusLabel,
		widget.NewSeparator(),
		container.NewHBox(cancelButton, saveButton),
	)

	sv.popup = widget.NewModalPopUp(content, sv.app.window.Canvas())
	sv.popup.Resize(fyne.NewSize(460, 280))
	sv.popup.Show()
}

// save applies the provider selection first (which clears a stale key
// for a changed provider) and then the key, if one was entered.
func (sv *SettingsView) save() {
	name, ok := sv.displayToName[sv.providerSelect.Selected]
	if !ok {
		sv.app.showError("Select a provider first.")
		return
	}

	if err := sv.app.controller.SetProvider(name); err != nil {
		sv.app.showError("Failed to switch provider: " + err.Error())
		return
	}

	if key := sv.apiKeyEntry.Text; key != "" {
		if err := sv.app.controller.SetAPIKey(key); err != nil {
			sv.app.showError("Failed to store API key: " + err.Error())
			return
		}
	}

	sv.popup.Hide()

	if !sv.app.controller.HasCredential() {
		sv.app.showInfo("Provider switched. Enter an API key before asking questions.")
	}
}
