package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/departure-board/internal/board"
	"github.com/ytget/departure-board/internal/config"
)

// Dispatcher accepts board events from the UI
type Dispatcher interface {
	Dispatch(ev board.Event) bool
}

// Keyboard shortcuts
var (
	ShortcutRefresh = &desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutQuit    = &desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault}
)

// BoardUI is the departure board window
type BoardUI struct {
	app          fyne.App
	window       fyne.Window
	dispatcher   Dispatcher
	settings     *config.Settings
	localization *Localization
	style        config.Style
	language     string

	state    board.State
	hasState bool
	rows     []board.Row
	notice   string
	hasTray  bool
	filter   bool
	notified bool

	list       *widget.List
	emptyText  *canvas.Text
	statusText *canvas.Text
	filterItem *fyne.MenuItem
	now        func() time.Time
}

// NewBoardUI creates the board UI inside window, starting from the resolved cfg
func NewBoardUI(app fyne.App, window fyne.Window, dispatcher Dispatcher, settings *config.Settings, cfg config.Config) *BoardUI {
	style := config.StyleOrDefault(cfg.Style)
	localization := NewLocalization()
	localization.SetLanguage(cfg.Language)

	ui := &BoardUI{
		app:          app,
		window:       window,
		dispatcher:   dispatcher,
		settings:     settings,
		localization: localization,
		style:        style,
		language:     cfg.Language,
		now:          time.Now,
	}
	ui.filter = cfg.FilterTerminals

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetCloseIntercept(ui.onCloseRequested)

	ui.window.Canvas().AddShortcut(ShortcutRefresh, func(fyne.Shortcut) { ui.refresh() })
	ui.window.Canvas().AddShortcut(ShortcutQuit, func(fyne.Shortcut) { ui.quit() })

	ui.setupTray()
	ui.createMenu()
	ui.buildContent()

	log.Debug().Str("style", string(style.Name)).Bool("tray", ui.hasTray).Msg("board UI initialized")
	return ui
}

// OnStateUpdate receives runner snapshots; safe to call from any goroutine
func (ui *BoardUI) OnStateUpdate(s board.State) {
	fyne.Do(func() {
		ui.applyState(s)
	})
}

// applyState must run on the UI goroutine
func (ui *BoardUI) applyState(s board.State) {
	ui.state = s
	ui.hasState = true
	ui.notice = ""
	ui.rows = board.Project(s, ui.now())

	ui.list.Refresh()
	ui.updateStatus()
}

// buildContent creates the window content for the current style
func (ui *BoardUI) buildContent() {
	ui.list = widget.NewList(
		func() int {
			return len(ui.rows)
		},
		func() fyne.CanvasObject {
			return NewDepartureRow(ui.style)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.rows) {
				return
			}
			if row, ok := obj.(*DepartureRow); ok {
				row.Update(ui.rows[id])
			}
		},
	)
	ui.list.HideSeparators = true

	ui.emptyText = canvas.NewText("", ui.style.TextColor)
	ui.emptyText.TextSize = ui.style.FontSize

	ui.statusText = canvas.NewText("", ui.style.TextColor)
	ui.statusText.TextSize = StatusTextSize

	content := container.NewBorder(
		nil,
		container.NewPadded(ui.statusText),
		nil,
		nil,
		container.NewStack(ui.list, container.NewCenter(ui.emptyText)),
	)
	ui.window.SetContent(content)
	ui.updateStatus()
}

// updateStatus refreshes the status bar and the empty board placeholder
func (ui *BoardUI) updateStatus() {
	text, healthy := ui.statusLine()
	if ui.notice != "" {
		text = ui.notice
	}
	ui.statusText.Text = text
	if healthy {
		ui.statusText.Color = ui.style.TextColor
	} else {
		ui.statusText.Color = ui.style.DelayAlert
	}
	ui.statusText.Refresh()

	ui.emptyText.Text = ""
	if ui.hasState && len(ui.rows) == 0 && healthy {
		ui.emptyText.Text = ui.localization.GetText(KeyNoDepartures)
	}
	ui.emptyText.Refresh()
}

// statusLine formats the status bar text and reports whether the board is healthy
func (ui *BoardUI) statusLine() (string, bool) {
	l := ui.localization
	if !ui.hasState {
		return IconLive + " " + l.GetText(KeyWaitingFirst), true
	}

	sum := board.Summarize(ui.state)
	parts := make([]string, 0, 3)
	if sum.Healthy {
		parts = append(parts, IconLive+" "+l.GetText(KeyStatusLive))
		parts = append(parts, fmt.Sprintf("%d %s", sum.Count, l.GetText(KeyDepartures)))
		if !sum.LastUpdated.IsZero() {
			parts = append(parts, l.GetText(KeyUpdatedAt)+" "+sum.LastUpdated.Local().Format(ClockLayout))
		}
		return strings.Join(parts, MiddleDotSeparator), true
	}

	problem := IconError + " " + l.GetText(KeyStatusError)
	if sum.Error != "" {
		problem += ": " + sum.Error
	}
	parts = append(parts, problem)
	if !sum.LastUpdated.IsZero() {
		parts = append(parts, l.GetText(KeyShowingSince)+" "+sum.LastUpdated.Local().Format(ClockLayout))
	}
	return strings.Join(parts, MiddleDotSeparator), false
}

// createMenu creates the application menu
func (ui *BoardUI) createMenu() {
	l := ui.localization

	refreshItem := fyne.NewMenuItem(l.GetText(KeyRefresh), ui.refresh)
	refreshItem.Shortcut = ShortcutRefresh

	// Marking the item as quit keeps Fyne from adding its own
	quitItem := fyne.NewMenuItem(l.GetText(KeyQuit), ui.quit)
	quitItem.IsQuit = true
	quitItem.Shortcut = ShortcutQuit

	fileMenu := fyne.NewMenu(l.GetText(KeyFile), refreshItem, fyne.NewMenuItemSeparator(), quitItem)

	styleMenu := fyne.NewMenu(l.GetText(KeyStyle))
	for _, name := range config.StyleNames() {
		styleName := name
		item := fyne.NewMenuItem(ui.styleLabel(styleName), func() {
			ui.onStyleChange(styleName)
		})
		item.Checked = ui.style.Name == styleName
		styleMenu.Items = append(styleMenu.Items, item)
	}
	styleItem := fyne.NewMenuItem(l.GetText(KeyStyle), nil)
	styleItem.ChildMenu = styleMenu

	ui.filterItem = fyne.NewMenuItem(l.GetText(KeyFilter), func() {
		ui.onFilterToggle()
	})
	ui.filterItem.Checked = ui.filter

	viewMenu := fyne.NewMenu(l.GetText(KeyView), styleItem, fyne.NewMenuItemSeparator(), ui.filterItem)

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	options := ui.settings.GetLanguageOptions()
	codes := make([]string, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	// "system" first, then alphabetical
	sort.Slice(codes, func(i, j int) bool {
		if codes[i] == config.DefaultLanguage || codes[j] == config.DefaultLanguage {
			return codes[i] == config.DefaultLanguage
		}
		return codes[i] < codes[j]
	})
	for _, code := range codes {
		langCode := code // Capture for closure
		item := fyne.NewMenuItem(options[code], func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = ui.language == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, languageMenu))
}

func (ui *BoardUI) styleLabel(name config.StyleName) string {
	switch name {
	case config.StyleBoard:
		return ui.localization.GetText(KeyStyleBoard)
	case config.StyleCompact:
		return ui.localization.GetText(KeyStyleCompact)
	}
	return string(name)
}

// setupTray installs the system tray menu when the driver has one
func (ui *BoardUI) setupTray() {
	desk, ok := ui.app.(desktop.App)
	if !ok {
		return
	}
	l := ui.localization
	desk.SetSystemTrayMenu(fyne.NewMenu(l.GetText(KeyAppTitle),
		fyne.NewMenuItem(l.GetText(KeyShow), func() {
			ui.window.Show()
			ui.window.RequestFocus()
		}),
		fyne.NewMenuItem(l.GetText(KeyRefresh), ui.refresh),
	))
	ui.hasTray = true
}

func (ui *BoardUI) refresh() {
	if !ui.dispatcher.Dispatch(board.RefreshEvent{}) {
		log.Warn().Msg("refresh request dropped")
	}
}

func (ui *BoardUI) quit() {
	log.Info().Msg("quit requested")
	ui.app.Quit()
}

// onCloseRequested keeps the board running when the window is closed
func (ui *BoardUI) onCloseRequested() {
	if ui.hasTray {
		ui.hideToTray()
		return
	}

	log.Info().Msg("window close ignored, use quit to exit")
	ui.notice = ui.localization.GetText(KeyCloseDisabled)
	ui.updateStatus()
}

// hideToTray hides the window; the first time it also tells the user where it went
func (ui *BoardUI) hideToTray() {
	log.Info().Msg("window closed, hiding to tray")
	ui.window.Hide()

	if ui.notified {
		return
	}
	ui.notified = true
	ui.app.SendNotification(fyne.NewNotification(
		ui.localization.GetText(KeyAppTitle),
		ui.localization.GetText(KeyWindowHidden),
	))
}

// onStyleChange switches the style profile and rebuilds the board
func (ui *BoardUI) onStyleChange(name config.StyleName) {
	style, ok := config.LookupStyle(name)
	if !ok {
		return
	}
	ui.settings.SetStyle(name)
	ui.style = style

	ui.app.Settings().SetTheme(NewBoardTheme(style))
	ui.buildContent()
	ui.createMenu()
	log.Info().Str("style", string(name)).Msg("style changed")
}

// onFilterToggle flips terminal filtering and fetches right away. The UI
// owns the filter choice; runner snapshots never change it.
func (ui *BoardUI) onFilterToggle() {
	enabled := !ui.filter
	if !ui.dispatcher.Dispatch(board.FilterEvent{Enabled: enabled}) {
		log.Warn().Bool("enabled", enabled).Msg("filter change dropped")
		return
	}

	ui.filter = enabled
	ui.settings.SetFilterTerminals(enabled)
	ui.createMenu()
}

// onLanguageChange handles language change
func (ui *BoardUI) onLanguageChange(langCode string) {
	ui.language = langCode
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.setupTray()
	ui.createMenu()
	ui.updateStatus()
}
