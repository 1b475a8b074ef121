package window

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/game"
	"github.com/pthm-cable/hamlet/social"
	"github.com/pthm-cable/hamlet/ui"
	"github.com/pthm-cable/hamlet/world"
)

// Palette
var (
	colorGrass     = rl.Color{R: 118, G: 170, B: 82, A: 255}
	colorBorder    = rl.Color{R: 70, G: 110, B: 50, A: 255}
	colorHome      = rl.Color{R: 222, G: 190, B: 150, A: 255}
	colorPublic    = rl.Color{R: 190, G: 200, B: 215, A: 255}
	colorWall      = rl.Color{R: 90, G: 70, B: 55, A: 255}
	colorFurniture = rl.Color{R: 150, G: 110, B: 80, A: 255}
	colorObject    = rl.Color{R: 250, G: 215, B: 80, A: 255}
	colorLink      = rl.Color{R: 255, G: 255, B: 255, A: 120}
	colorBubble    = rl.Color{R: 255, G: 255, B: 255, A: 235}
	colorBubbleTxt = rl.Color{R: 30, G: 30, B: 30, A: 255}
	colorSelect    = rl.Yellow
)

var stageColors = [...]rl.Color{
	social.Stranger:     {R: 150, G: 150, B: 150, A: 255},
	social.Acquaintance: {R: 120, G: 170, B: 220, A: 255},
	social.Friend:       {R: 100, G: 200, B: 120, A: 255},
	social.Lover:        {R: 240, G: 120, B: 160, A: 255},
	social.Married:      {R: 230, G: 190, B: 80, A: 255},
	social.Parent:       {R: 200, G: 130, B: 230, A: 255},
}

var bubbleColors = map[game.BubbleKind]rl.Color{
	game.BubbleSpeech:      colorBubble,
	game.BubbleReaction:    {R: 255, G: 245, B: 200, A: 235},
	game.BubbleCelebration: {R: 255, G: 215, B: 235, A: 235},
	game.BubbleDecree:      {R: 225, G: 215, B: 255, A: 235},
}

const controlsLegend = "[Space] pause  [</>] speed  [O] object  [X] clear  [G] decree  [C] chronicle  [F] follow  [Home] reset view"

// Draw renders one frame.
func (w *Window) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBorder)

	w.drawGround()
	w.drawBuildings()
	w.drawObjects()

	agents := w.game.Agents()
	byID := make(map[string]game.AgentView, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}
	w.drawConversationLinks(agents, byID)
	w.drawAgents(agents)
	w.drawBubbles(byID)

	w.drawHUD(agents)
	if w.selected != "" {
		if a, ok := byID[w.selected]; ok {
			w.inspector.Draw(a.Name, w.selectedSections())
		} else {
			w.selected = ""
		}
	}

	rl.EndDrawing()
}

func (w *Window) drawGround() {
	cfg := w.game.Config()
	w.fillRect(world.Rect{W: cfg.World.Width, H: cfg.World.Height}, colorGrass)
}

func (w *Window) drawBuildings() {
	for _, b := range w.game.Map().Buildings() {
		fill := colorPublic
		if b.Kind == world.KindHome {
			fill = colorHome
		}
		for _, room := range b.Rooms() {
			w.fillRect(room, fill)
		}
		for _, room := range b.Rooms() {
			w.outlineRect(room, colorWall)
		}
		for _, f := range b.Furniture {
			w.fillRect(f.Rect, colorFurniture)
		}

		x, y := w.camera.WorldToScreen(float32(b.Rect.X), float32(b.Rect.Y))
		rl.DrawText(b.Name, int32(x)+4, int32(y)+4, 12, colorWall)
	}
}

func (w *Window) drawObjects() {
	radius := w.camera.Scale(10)
	for _, obj := range w.game.Objects() {
		x, y := w.camera.WorldToScreen(float32(obj.X), float32(obj.Y))
		rl.DrawPoly(rl.Vector2{X: x, Y: y}, 5, radius, 0, colorObject)
		rl.DrawPolyLines(rl.Vector2{X: x, Y: y}, 5, radius, 0, colorWall)
		rl.DrawText(obj.Name, int32(x+radius+3), int32(y-6), 12, rl.White)
	}
}

// drawConversationLinks joins each talking pair, coloured by stage.
func (w *Window) drawConversationLinks(agents []game.AgentView, byID map[string]game.AgentView) {
	for _, a := range agents {
		if a.State != components.StateTalking || a.ID > a.TalkingTo {
			continue
		}
		b, ok := byID[a.TalkingTo]
		if !ok {
			continue
		}
		color := colorLink
		if r := w.game.Relationship(a.ID, b.ID); r != nil && int(r.Stage) < len(stageColors) {
			color = stageColors[r.Stage]
		}
		ax, ay := w.camera.WorldToScreen(float32(a.X), float32(a.Y))
		bx, by := w.camera.WorldToScreen(float32(b.X), float32(b.Y))
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, 2, color)
	}
}

// drawAgents renders each villager as a coloured disc with its initial.
func (w *Window) drawAgents(agents []game.AgentView) {
	for _, a := range agents {
		radius := float32(12)
		if a.Baby {
			radius = 8
		}
		if !w.camera.IsVisible(float32(a.X), float32(a.Y), radius) {
			continue
		}
		x, y := w.camera.WorldToScreen(float32(a.X), float32(a.Y))
		r := w.camera.Scale(radius)

		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r, parseHexColor(a.Color, rl.Gray))
		rl.DrawCircleLinesV(rl.Vector2{X: x, Y: y}, r, rl.White)
		if a.ID == w.selected {
			rl.DrawCircleLinesV(rl.Vector2{X: x, Y: y}, r+4, colorSelect)
		}

		initial := initialOf(a.Name)
		tw := rl.MeasureText(initial, 14)
		rl.DrawText(initial, int32(x)-tw/2, int32(y)-7, 14, rl.White)
		rl.DrawText(a.Name, int32(x)-rl.MeasureText(a.Name, 10)/2, int32(y+r+2), 10, rl.White)
	}
}

// drawBubbles stacks each agent's bubbles above its head, newest on top.
func (w *Window) drawBubbles(byID map[string]game.AgentView) {
	const (
		fontSize = 12
		pad      = 4
		maxWidth = 200
	)
	offsets := make(map[string]float32)
	bubbles := w.game.Bubbles()
	for i := len(bubbles) - 1; i >= 0; i-- {
		b := bubbles[i]
		a, ok := byID[b.AgentID]
		if !ok {
			continue
		}
		x, y := w.camera.WorldToScreen(float32(a.X), float32(a.Y))

		lines := ui.Wrap(b.Text, maxWidth, func(s string) int32 { return rl.MeasureText(s, fontSize) })
		if len(lines) == 0 {
			continue
		}
		width := int32(0)
		for _, l := range lines {
			width = max(width, rl.MeasureText(l, fontSize))
		}
		height := int32(len(lines))*(fontSize+2) + pad*2

		top := y - w.camera.Scale(14) - offsets[b.AgentID] - float32(height)
		left := x - float32(width+pad*2)/2
		rect := rl.Rectangle{X: left, Y: top, Width: float32(width + pad*2), Height: float32(height)}
		rl.DrawRectangleRounded(rect, 0.3, 6, bubbleColors[b.Kind])

		for j, l := range lines {
			rl.DrawText(l, int32(left)+pad, int32(top)+pad+int32(j)*(fontSize+2), fontSize, colorBubbleTxt)
		}
		offsets[b.AgentID] += float32(height + 4)
	}
}

func (w *Window) drawHUD(agents []game.AgentView) {
	data := ui.HUDData{
		Title:    "Hamlet",
		Tick:     w.game.Tick(),
		Objects:  len(w.game.Objects()),
		Pending:  w.game.Locks().Len(),
		Speed:    w.game.StepsPerUpdate(),
		FPS:      rl.GetFPS(),
		Paused:   w.game.Paused(),
		Provider: w.game.Config().Gateway.Provider,
	}
	for _, a := range agents {
		data.Agents++
		if a.Baby {
			data.Babies++
		}
		if a.State == components.StateTalking {
			data.Talking++
		}
	}
	w.hud.Draw(data)
	w.hud.DrawControls(int32(w.screenHeight), controlsLegend)

	var counts [len(stageColors)]int
	for _, r := range w.game.Relationships() {
		if int(r.Stage) < len(counts) {
			counts[r.Stage]++
		}
	}
	rows := make([]ui.StageCount, len(counts))
	for s := range counts {
		rows[s] = ui.StageCount{Label: social.Stage(s).String(), Count: counts[s], Color: stageColors[s]}
	}
	bottom := w.hud.DrawStages(10, 100, 220, rows)

	w.controls.SetPosition(10, bottom+10)
	objectLabel, decreeLabel := "object", "decree"
	if p, ok := w.game.NextObjectPreset(); ok {
		objectLabel = p.Name
	}
	if d, ok := w.game.NextDecree(); ok {
		decreeLabel = social.Truncate(d, 18)
	}
	switch w.controls.Draw(w.game.Paused(), objectLabel, decreeLabel) {
	case ui.ActionSpawnObject:
		w.game.SpawnPreset()
	case ui.ActionClearObjects:
		w.game.ClearObjects()
	case ui.ActionDecree:
		w.game.DecreePreset()
	case ui.ActionTogglePause:
		w.game.SetPaused(!w.game.Paused())
	case ui.ActionNone:
	}

	if w.showChronicle {
		entries := w.game.Chronicle().Tail(8)
		lines := make([]ui.ChronicleLine, len(entries))
		for i, e := range entries {
			lines[i] = ui.ChronicleLine{Tick: e.Tick, Text: e.Text}
		}
		w.hud.DrawChronicle(int32(w.screenWidth), int32(w.screenHeight), 520, lines)
	}
}

func (w *Window) fillRect(r world.Rect, color rl.Color) {
	x, y := w.camera.WorldToScreen(float32(r.X), float32(r.Y))
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: w.camera.Scale(float32(r.W)), Y: w.camera.Scale(float32(r.H))}, color)
}

func (w *Window) outlineRect(r world.Rect, color rl.Color) {
	x, y := w.camera.WorldToScreen(float32(r.X), float32(r.Y))
	rect := rl.Rectangle{X: x, Y: y, Width: w.camera.Scale(float32(r.W)), Height: w.camera.Scale(float32(r.H))}
	rl.DrawRectangleLinesEx(rect, 2, color)
}

// parseHexColor reads "#rrggbb", returning fallback when s is malformed.
func parseHexColor(s string, fallback rl.Color) rl.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func initialOf(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

