package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/departure-board/internal/board"
	"github.com/ytget/departure-board/internal/config"
	"github.com/ytget/departure-board/internal/palette"
)

// DepartureRow is one line of the board: a colored line badge, the
// destination, the departure time and the delay
type DepartureRow struct {
	widget.BaseWidget

	style config.Style

	badge       *canvas.Rectangle
	lineText    *canvas.Text
	destination *canvas.Text
	timeText    *canvas.Text
	gap         *canvas.Rectangle
	delayText   *canvas.Text
}

// NewDepartureRow creates an empty row drawn with style
func NewDepartureRow(style config.Style) *DepartureRow {
	dr := &DepartureRow{style: style}
	dr.ExtendBaseWidget(dr)
	dr.createUI()
	return dr
}

// createUI creates the canvas objects
func (dr *DepartureRow) createUI() {
	s := dr.style

	dr.badge = canvas.NewRectangle(palette.Alert)
	dr.badge.SetMinSize(fyne.NewSize(s.BadgeWidth, s.FontSize+2*s.BadgePadding))

	dr.lineText = canvas.NewText("", s.BadgeText)
	dr.lineText.TextSize = s.FontSize
	dr.lineText.TextStyle = fyne.TextStyle{Bold: true}
	dr.lineText.Alignment = fyne.TextAlignCenter

	dr.destination = canvas.NewText("", s.TextColor)
	dr.destination.TextSize = s.FontSize

	dr.timeText = canvas.NewText("", s.TextColor)
	dr.timeText.TextSize = s.FontSize
	dr.timeText.TextStyle = fyne.TextStyle{Monospace: true}
	dr.timeText.Alignment = fyne.TextAlignTrailing

	// Transparent spacer between time and delay
	dr.gap = canvas.NewRectangle(color.Transparent)
	dr.gap.SetMinSize(fyne.NewSize(s.DelayGap, 0))

	dr.delayText = canvas.NewText("", s.TextColor)
	dr.delayText.TextSize = s.FontSize
	dr.delayText.TextStyle = fyne.TextStyle{Monospace: true}
}

// CreateRenderer lays the row out as badge | destination | time gap delay
func (dr *DepartureRow) CreateRenderer() fyne.WidgetRenderer {
	badgeBox := container.NewStack(dr.badge, container.NewCenter(dr.lineText))
	trailing := container.NewHBox(
		container.NewCenter(dr.timeText),
		dr.gap,
		container.NewCenter(dr.delayText),
	)
	body := container.NewBorder(nil, nil, badgeBox, trailing, container.NewHBox(
		layout.NewSpacer(),
		container.NewCenter(dr.destination),
		layout.NewSpacer(),
	))

	p := dr.style.RowPadding
	return widget.NewSimpleRenderer(container.New(layout.NewCustomPaddedLayout(p, p, 0, 0), body))
}

// Update shows row
func (dr *DepartureRow) Update(row board.Row) {
	dr.badge.FillColor = row.LineColor
	dr.lineText.Text = row.Line
	dr.destination.Text = row.Destination
	dr.timeText.Text = row.Time
	if row.TimeInvalid {
		dr.timeText.Color = dr.style.DelayAlert
	} else {
		dr.timeText.Color = dr.style.TextColor
	}

	dr.delayText.Text = row.Delay
	if row.DelayAlert {
		dr.delayText.Color = dr.style.DelayAlert
	} else {
		dr.delayText.Color = dr.style.TextColor
	}

	for _, obj := range []fyne.CanvasObject{dr.badge, dr.lineText, dr.destination, dr.timeText, dr.delayText} {
		obj.Refresh()
	}
	dr.Refresh()
}
