package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWholeMap(t *testing.T) {
	cam := New(1280, 800, 1280, 800)

	if cam.X != 640 || cam.Y != 400 {
		t.Errorf("expected camera at (640, 400), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}

	small := New(640, 400, 1280, 800)
	if !near(small.Zoom, 0.5) {
		t.Errorf("expected fit zoom 0.5 on a half-size window, got %f", small.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 800, 1280, 800)

	sx, sy := cam.WorldToScreen(640, 400)
	if !near(sx, 640) || !near(sy, 400) {
		t.Errorf("expected screen center (640, 400), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.ZoomBy(2)
	cam.Pan(100, -50)

	for _, tc := range []struct{ sx, sy float32 }{{640, 400}, {100, 100}, {1200, 700}} {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStopsAtEdges(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.SetZoom(2)

	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("expected view pinned to top-left, got (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(maxY, 800) {
		t.Errorf("expected view pinned to bottom-right, got (%f, %f)", maxX, maxY)
	}
}

func TestPanAtFitZoomDoesNothing(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.Pan(300, 300)
	if cam.X != 640 || cam.Y != 400 {
		t.Errorf("whole map visible, camera should stay centred; got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 800, 1280, 800)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestCenterOn(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.SetZoom(4)
	cam.CenterOn(600, 300)
	if cam.X != 600 || cam.Y != 300 {
		t.Errorf("expected (600, 300), got (%f, %f)", cam.X, cam.Y)
	}
	cam.CenterOn(0, 0)
	if !near(cam.X, 160) || !near(cam.Y, 100) {
		t.Errorf("expected centre clamped to (160, 100), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.SetZoom(2)
	cam.CenterOn(640, 400)

	if !cam.IsVisible(640, 400, 5) {
		t.Error("centre should be visible")
	}
	if cam.IsVisible(10, 10, 5) {
		t.Error("far corner should not be visible at 2x")
	}
	if !cam.IsVisible(320-4, 400, 5) {
		t.Error("circle overlapping the left edge should be visible")
	}
}

func TestResizeKeepsZoomValid(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.Resize(640, 400)
	if cam.MinZoom != 0.5 {
		t.Errorf("MinZoom = %f, want 0.5", cam.MinZoom)
	}
	cam.Resize(2560, 1600)
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below min %f after resize", cam.Zoom, cam.MinZoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.SetZoom(3)
	cam.Pan(200, 200)
	cam.Reset()
	if cam.X != 640 || cam.Y != 400 || cam.Zoom != 1 {
		t.Errorf("after reset: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
