package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
	SectionGap   = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is a titled group of rows.
type Section struct {
	Title  string
	Fields []Field
}

// SectionOf builds a section from the tagged fields of a component.
func SectionOf(title string, component any) Section {
	return Section{Title: title, Fields: ExtractFields(component, true)}
}

// Inspector draws the details panel for one selected entity.
type Inspector struct {
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize anchors the panel to the top right of the new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Height returns the panel height needed for sections.
func Height(sections []Section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		h += rowHeight + int32(len(s.Fields))*rowHeight + SectionGap
	}
	return h
}

// Contains reports whether a screen point is over a panel of the given sections.
func (ins *Inspector) Contains(x, y float32, sections []Section) bool {
	return x >= float32(ins.panelX) && x <= float32(ins.panelX+PanelWidth) &&
		y >= float32(ins.panelY) && y <= float32(ins.panelY+Height(sections))
}

// Draw renders the panel with a title bar and one block per section.
func (ins *Inspector) Draw(title string, sections []Section) {
	x, y := ins.panelX, ins.panelY
	h := Height(sections)

	rl.DrawRectangle(x, y, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawRectangleLines(x, y, PanelWidth, h, ColorPanelBorder)
	rl.DrawText(title, x+PanelPadding, y+8, 16, ColorHeaderText)

	cy := y + HeaderHeight + PanelPadding/2
	for _, s := range sections {
		rl.DrawText(s.Title, x+PanelPadding, cy, 14, ColorSectionText)
		cy += rowHeight
		for _, f := range s.Fields {
			cy += DrawField(x+PanelPadding+8, cy, f)
		}
		cy += SectionGap
	}
}
