package previz

import (
	"math"
	"testing"
)

const tol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-720, 0},
		{720.25, 0.25},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); !almostEqual(got, c.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRotatePoint_zero_points_north(t *testing.T) {
	x, y := RotatePoint(0, 5, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 5) {
		t.Errorf("RotatePoint(0, 5, 0) = (%v, %v), want (0, 5)", x, y)
	}
}

func TestRotatePoint_clockwise_quadrants(t *testing.T) {
	cases := []struct {
		angle        float64
		wantX, wantY float64
	}{
		{90, 5, 0},   // east
		{180, 0, -5}, // south
		{270, -5, 0}, // west
	}
	for _, c := range cases {
		x, y := RotatePoint(0, 5, c.angle)
		if !almostEqual(x, c.wantX) || !almostEqual(y, c.wantY) {
			t.Errorf("RotatePoint(0, 5, %v) = (%v, %v), want (%v, %v)",
				c.angle, x, y, c.wantX, c.wantY)
		}
	}
}

func TestRotatePoint_inverse_round_trip(t *testing.T) {
	points := []struct{ x, y float64 }{
		{1, 0}, {0, 1}, {-3.5, 2.25}, {10, -7}, {0, 0},
	}
	angles := []float64{0, 17, 45, 90, 133.7, 180, 270, 359, -45, 400}

	for _, p := range points {
		for _, a := range angles {
			rx, ry := RotatePoint(p.x, p.y, a)
			bx, by := RotatePoint(rx, ry, -a)
			if !almostEqual(bx, p.x) || !almostEqual(by, p.y) {
				t.Errorf("rotate(%v,%v) by %v then -%v = (%v, %v)", p.x, p.y, a, a, bx, by)
			}
		}
	}
}

func TestCameraFrustum_apex_and_symmetry(t *testing.T) {
	poses := []Pose{
		{X: 0, Y: 0, Rotation: 0},
		{X: 3, Y: -4, Rotation: 90},
		{X: -2, Y: 5, Rotation: 217},
	}
	fovs := []float64{12, 47, 107, 179}

	for _, p := range poses {
		for _, fov := range fovs {
			f := CameraFrustum(p, fov, DefaultFrustumLength)

			if f[0].X != p.X || f[0].Y != p.Y {
				t.Fatalf("apex = %+v, want pose position (%v, %v)", f[0], p.X, p.Y)
			}

			// Far corners equidistant from the apex.
			dl := math.Hypot(f[1].X-p.X, f[1].Y-p.Y)
			dr := math.Hypot(f[2].X-p.X, f[2].Y-p.Y)
			if !almostEqual(dl, dr) {
				t.Errorf("fov %v: corner distances %v != %v", fov, dl, dr)
			}

			// Symmetric about the forward ray: the corner midpoint lies on it.
			fx, fy := RotatePoint(0, DefaultFrustumLength, p.Rotation)
			midX := (f[1].X+f[2].X)/2 - p.X
			midY := (f[1].Y+f[2].Y)/2 - p.Y
			if !almostEqual(midX, fx) || !almostEqual(midY, fy) {
				t.Errorf("fov %v: corner midpoint (%v, %v), want forward point (%v, %v)",
					fov, midX, midY, fx, fy)
			}
		}
	}
}

func TestCameraFrustum_width_follows_fov(t *testing.T) {
	p := Pose{X: 0, Y: 0, Rotation: 0}
	f := CameraFrustum(p, 90, 4)

	// tan(45 deg) * 4 = 4 on each side of the forward ray.
	if !almostEqual(f[1].X, -4) || !almostEqual(f[1].Y, 4) {
		t.Errorf("far left = %+v, want (-4, 4)", f[1])
	}
	if !almostEqual(f[2].X, 4) || !almostEqual(f[2].Y, 4) {
		t.Errorf("far right = %+v, want (4, 4)", f[2])
	}
}

func TestBeamLength_per_type_divisors(t *testing.T) {
	cases := []struct {
		lightType LightType
		intensity float64
		want      float64
	}{
		{LightKey, 75, 5},
		{LightFill, 30, 2},
		{LightBack, 90, 6},
		{LightLEDPanel, 100, 4},
		{LightPractical, 80, 2},
		{LightNatural, 50, 5},
	}
	for _, c := range cases {
		if got := BeamLength(c.lightType, c.intensity); !almostEqual(got, c.want) {
			t.Errorf("BeamLength(%s, %v) = %v, want %v", c.lightType, c.intensity, got, c.want)
		}
	}
}

func TestLightBeam_zero_intensity_is_degenerate(t *testing.T) {
	start, end := LightBeam(Pose{X: 2, Y: 3, Rotation: 42}, 0, LightKey)
	if start != end {
		t.Errorf("zero intensity beam should collapse: start %+v end %+v", start, end)
	}
}

func TestLightBeam_direction(t *testing.T) {
	// 90 degrees points east; Key divisor 15 gives length 4 at intensity 60.
	start, end := LightBeam(Pose{X: 1, Y: 1, Rotation: 90}, 60, LightKey)
	if start != (Point{1, 1}) {
		t.Fatalf("start = %+v, want (1, 1)", start)
	}
	if !almostEqual(end.X, 5) || !almostEqual(end.Y, 1) {
		t.Errorf("end = %+v, want (5, 1)", end)
	}
}
