package window

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/game"
	"github.com/pthm-cable/hamlet/inspector"
)

// pickRadius is the click tolerance around an agent, in screen pixels.
const pickRadius = 18

// handleSelection selects the agent under a left click. Right click or
// Escape clears the selection.
func (w *Window) handleSelection() {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		w.selected = ""
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if w.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	if w.selected != "" && w.inspector.Contains(mouse.X, mouse.Y, w.selectedSections()) {
		return
	}

	if id, ok := w.agentAt(mouse.X, mouse.Y); ok {
		w.selected = id
	} else {
		w.selected = ""
	}
}

// agentAt returns the agent closest to a screen point within pickRadius.
func (w *Window) agentAt(sx, sy float32) (string, bool) {
	var (
		best     string
		bestDist = float32(pickRadius * pickRadius)
		found    bool
	)
	for _, a := range w.game.Agents() {
		ax, ay := w.camera.WorldToScreen(float32(a.X), float32(a.Y))
		dx, dy := ax-sx, ay-sy
		if d := dx*dx + dy*dy; d <= bestDist {
			best, bestDist, found = a.ID, d, true
		}
	}
	return best, found
}

// selectedSections builds the inspector rows for the selected agent.
func (w *Window) selectedSections() []inspector.Section {
	a, ok := w.game.Agent(w.selected)
	if !ok {
		return nil
	}

	summary := inspector.Section{Title: "Villager"}
	for _, fd := range components.AgentFieldDescriptors() {
		summary.Fields = append(summary.Fields, inspector.Field{
			Name:    fd.Label,
			Value:   agentField(a, fd.ID),
			Widget:  inspector.WidgetLabel,
			Options: map[string]string{"fmt": fd.Format},
		})
	}

	if said := w.game.BubblesFor(a.ID); len(said) > 0 {
		summary.Fields = append(summary.Fields, inspector.Field{
			Name: "Saying", Value: said[len(said)-1].Text, Widget: inspector.WidgetLabel,
		})
	}

	family := inspector.Section{Title: "Family"}
	if a.Baby {
		family.Fields = append(family.Fields, inspector.Field{
			Name: "Parents", Value: w.names(a.Parents), Widget: inspector.WidgetLabel,
		})
	}
	for _, r := range w.game.Relationships() {
		if r.AgentA != a.ID && r.AgentB != a.ID {
			continue
		}
		other := r.Other(a.ID)
		family.Fields = append(family.Fields, inspector.Field{
			Name:   w.name(other),
			Value:  fmt.Sprintf("%s (%d)", r.Stage, r.MeetCount),
			Widget: inspector.WidgetLabel,
		})
	}

	return []inspector.Section{summary, family}
}

// agentField returns the value shown for one agent field descriptor.
func agentField(a game.AgentView, id string) any {
	switch id {
	case "name":
		return a.Name
	case "home":
		return a.HomeID
	case "state":
		return a.State.String()
	case "talking_to":
		return a.TalkingTo
	case "destination":
		return a.Destination
	case "speed":
		return a.Speed
	}
	return ""
}

func (w *Window) name(id string) string {
	if a, ok := w.game.Agent(id); ok {
		return a.Name
	}
	return id
}

func (w *Window) names(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = w.name(id)
	}
	return strings.Join(out, ", ")
}
