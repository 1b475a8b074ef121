package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int64
	Agents   int
	Babies   int
	Talking  int
	Objects  int
	Pending  int // gateway requests in flight
	Speed    int
	FPS      int32
	Paused   bool
	Provider string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Villagers: %d (%d babies) | Talking: %d | Objects: %d", data.Agents, data.Babies, data.Talking, data.Objects),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Gateway: %s (%d pending)", data.Tick, data.Speed, data.FPS, data.Provider, data.Pending),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StageCount is one row of the relationship histogram.
type StageCount struct {
	Label string
	Count int
	Color rl.Color
}

// DrawStages renders the relationship histogram in a panel at x, y.
func (h *HUD) DrawStages(x, y, width int32, rows []StageCount) int32 {
	r := h.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight + int32(len(rows))*(r.Theme.LineHeight+2)
	r.DrawPanel(x, y, width, height)

	total := 0
	for _, row := range rows {
		total += row.Count
	}

	cy := r.DrawSectionHeader(x+pad, y+pad, "Relationships")
	for _, row := range rows {
		cy = r.DrawCountBar(x+pad, cy, row.Label, row.Count, total, width-pad*2, row.Color)
	}
	return y + height
}

// ChronicleLine is one entry of the chronicle panel.
type ChronicleLine struct {
	Tick int64
	Text string
}

// DrawChronicle renders the newest entries, newest at the bottom, in a panel
// anchored to the bottom-left corner.
func (h *HUD) DrawChronicle(screenW, screenH, width int32, lines []ChronicleLine) {
	if len(lines) == 0 {
		return
	}
	r := h.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(len(lines)+1)
	x, y := AnchorBottomLeft.Place(screenW, screenH, width, height, 34)
	r.DrawPanel(x, y, width, height)

	cy := r.DrawSectionHeader(x+pad, y+pad, "Chronicle")
	for _, l := range lines {
		text := fmt.Sprintf("[%d] %s", l.Tick, l.Text)
		rl.DrawText(text, x+pad, cy, r.Theme.FontSize, r.Theme.LabelColor)
		cy += r.Theme.LineHeight
	}
}
