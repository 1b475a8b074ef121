package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a god control the user clicked this frame.
type Action int

const (
	ActionNone Action = iota
	ActionSpawnObject
	ActionClearObjects
	ActionDecree
	ActionTogglePause
)

// ControlsPanel renders the god controls as raygui buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

const buttonHeight = 26

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height.
func (c *ControlsPanel) Height() int32 {
	pad := c.renderer.Theme.Padding
	return pad*2 + c.renderer.Theme.LineHeight + 4*(buttonHeight+4)
}

// Contains reports whether a screen point is over the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.Height())
}

// Draw renders the buttons and returns the one pressed, if any.
func (c *ControlsPanel) Draw(paused bool, nextObject, nextDecree string) Action {
	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	y := r.DrawSectionHeader(c.x+pad, c.y+pad, "God controls")
	bx := float32(c.x + pad)
	bw := float32(c.width - pad*2)

	action := ActionNone
	button := func(label string, a Action) {
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: bw, Height: buttonHeight}, label) {
			action = a
		}
		y += buttonHeight + 4
	}

	button("Spawn "+nextObject, ActionSpawnObject)
	button("Clear objects", ActionClearObjects)
	button("Decree: "+nextDecree, ActionDecree)
	if paused {
		button("Resume", ActionTogglePause)
	} else {
		button("Pause", ActionTogglePause)
	}

	return action
}
