package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (w *Window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		w.game.SetPaused(!w.game.Paused())
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() + 1)
	}

	// God controls
	if rl.IsKeyPressed(rl.KeyO) {
		w.game.SpawnPreset()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		w.game.ClearObjects()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		w.game.DecreePreset()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		w.showChronicle = !w.showChronicle
	}

	w.handleCameraInput()
	w.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())
	if width == w.screenWidth && height == w.screenHeight {
		return
	}
	w.screenWidth = width
	w.screenHeight = height

	w.camera.Resize(width, height)
	w.inspector.Resize(int32(width), int32(height))
}

// handleCameraInput processes camera pan/zoom controls.
func (w *Window) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / w.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		w.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		w.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		w.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		w.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.camera.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		w.camera.Reset()
	}

	// Follow the selected villager
	if w.selected != "" && rl.IsKeyDown(rl.KeyF) {
		if a, ok := w.game.Agent(w.selected); ok {
			w.camera.CenterOn(float32(a.X), float32(a.Y))
		}
	}
}
