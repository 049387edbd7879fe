package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/flare/particle"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Should be centered on world
	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(1280, 720)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
		{-50, 900},  // off screen
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestProjectMatchesIdentityAtDefault(t *testing.T) {
	// Screen-sized world at zoom 1 is the identity transform.
	cam := New(800, 600, 800, 600)
	for _, v := range []particle.Vec2{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 799, Y: 12}} {
		if got := cam.Project(v); got != v {
			t.Errorf("Project(%+v) = %+v", v, got)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 100

	cam.Pan(-200, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}

	cam.Pan(0, 5000)
	if cam.Y != 1440 {
		t.Errorf("expected Y clamped to 1440, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	wx, wy := cam.ScreenToWorld(300, 200)

	cam.ZoomAt(300, 200, 2)

	sx, sy := cam.WorldToScreen(wx, wy)
	if math.Abs(float64(sx-300)) > 0.01 || math.Abs(float64(sy-200)) > 0.01 {
		t.Errorf("anchor point moved to (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Visible range in world coords: (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestTriangleVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	tests := []struct {
		name string
		pts  [3]particle.Vec2
		want bool
	}{
		{"inside", [3]particle.Vec2{{X: 1000, Y: 700}, {X: 1010, Y: 700}, {X: 1000, Y: 710}}, true},
		{"straddles edge", [3]particle.Vec2{{X: 600, Y: 700}, {X: 700, Y: 700}, {X: 600, Y: 710}}, true},
		{"left of view", [3]particle.Vec2{{X: 100, Y: 700}, {X: 200, Y: 700}, {X: 100, Y: 710}}, false},
		{"below view", [3]particle.Vec2{{X: 1000, Y: 1200}, {X: 1010, Y: 1200}, {X: 1000, Y: 1210}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tri particle.Triangle
			for i, p := range tt.pts {
				tri[i].Pos = p
			}
			if got := cam.TriangleVisible(&tri); got != tt.want {
				t.Errorf("TriangleVisible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected position (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
