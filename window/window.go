// Package window runs the village in a raylib window: camera, drawing,
// selection and the god controls.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hamlet/camera"
	"github.com/pthm-cable/hamlet/game"
	"github.com/pthm-cable/hamlet/inspector"
	"github.com/pthm-cable/hamlet/ui"
)

// Window draws one game and feeds it user input.
type Window struct {
	game      *game.Game
	camera    *camera.Camera
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *inspector.Inspector

	screenWidth  float32
	screenHeight float32

	selected      string // agent id, empty when nothing is selected
	showChronicle bool
}

// New creates a window view of g. The raylib window must already be open.
func New(g *game.Game, width, height int32) *Window {
	cfg := g.Config()
	w := &Window{
		game:          g,
		camera:        camera.New(float32(width), float32(height), float32(cfg.World.Width), float32(cfg.World.Height)),
		hud:           ui.NewHUD(),
		controls:      ui.NewControlsPanel(10, 100, 220),
		inspector:     inspector.NewInspector(width, height),
		screenWidth:   float32(width),
		screenHeight:  float32(height),
		showChronicle: true,
	}
	return w
}

// Update handles input and advances the simulation.
func (w *Window) Update() {
	w.handleInput()
	w.game.Update()
}

// Run loops Update and Draw until the window closes or the game reaches
// maxTicks. Zero runs until the window closes.
func (w *Window) Run(maxTicks int64) {
	for !rl.WindowShouldClose() {
		if maxTicks > 0 && w.game.Tick() >= maxTicks {
			return
		}
		w.Update()
		w.Draw()
	}
}
