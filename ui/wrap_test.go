package ui

import (
	"reflect"
	"testing"
)

// runeWidth measures every rune as one unit.
func runeWidth(s string) int32 {
	return int32(len([]rune(s)))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int32
		want  []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "hello there", 20, []string{"hello there"}},
		{"breaks", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, runeWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestPanelAnchorPlace(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 690, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 690, 490},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Place(1000, 600, 300, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: got (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}
