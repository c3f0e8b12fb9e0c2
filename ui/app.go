package ui

import (
	"doc-chat/chat"
	"doc-chat/document"
	"doc-chat/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	controller *chat.Controller
	extractor  document.Extractor
	logger     *utils.Logger

	chatView     *ChatView
	settingsView *SettingsView
}

// NewApp creates a new application instance
func NewApp(config *utils.Config, configPath string, controller *chat.Controller, extractor document.Extractor, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("doc-chat")
	window := fyneApp.NewWindow("DocChat")

	// Set window size from config
	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	application := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		controller: controller,
		extractor:  extractor,
		logger:     logger,
	}

	// Save window size when closing
	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		application.config.UI.WindowWidth = int(size.Width)
		application.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(application.configPath, application.config); err != nil {
			application.logger.Error("Failed to save window size: %v", err)
		}
	})

	application.buildUI()

	return application
}

// buildUI assembles the single-conversation window: a toolbar with the
// document and settings controls above the chat view.
func (a *App) buildUI() {
	a.chatView = NewChatView(a)
	a.settingsView = NewSettingsView(a)

	openButton := widget.NewButton("📄 Open PDF", func() {
		a.openDocument()
	})
	openButton.Importance = widget.HighImportance

	settingsButton := widget.NewButton("⚙️ Settings", func() {
		a.settingsView.Show()
	})

	toolbar := container.NewBorder(
		nil, nil,
		openButton,
		settingsButton,
		a.chatView.documentLabel,
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		nil, nil, nil,
		a.chatView.Build(),
	)

	a.window.SetContent(content)
}

// Run starts the application main loop
func (a *App) Run() {
	a.window.ShowAndRun()
}

// showError shows an error dialog
func (a *App) showError(message string) {
	var dialog *widget.PopUp
	dialog = widget.NewModalPopUp(
		container.NewVBox(
			widget.NewLabel("❌ Error"),
			widget.NewLabel(message),
			widget.NewButton("OK", func() {
				dialog.Hide()
			}),
		),
		a.window.Canvas(),
	)
	dialog.Show()
}

// showInfo shows an info dialog
func (a *App) showInfo(message string) {
	var dialog *widget.PopUp
	dialog = widget.NewModalPopUp(
		container.NewVBox(
			widget.NewLabel("ℹ️ Info"),
			widget.NewLabel(message),
			widget.NewButton("OK", func() {
				dialog.Hide()
			}),
		),
		a.window.Canvas(),
	)
	dialog.Show()
}
