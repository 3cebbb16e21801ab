package previz

import "math"

// Rotation convention: degrees clockwise from the stage's north (+y) axis.
// NormalizeAngle(0) points along +y, 90 along +x, 180 along -y, 270 along -x.

// Point is a position on the stage plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is a position plus rotation on the stage plane.
type Pose struct {
	X        float64
	Y        float64
	Rotation float64
}

// DefaultFrustumLength is the forward reach, in stage units, of a projected
// camera frustum.
const DefaultFrustumLength = 4.0

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// RotatePoint rotates (x, y) about the origin by angleDeg, clockwise from
// north. RotatePoint(0, l, 0) yields (0, l).
func RotatePoint(x, y, angleDeg float64) (float64, float64) {
	rad := -NormalizeAngle(angleDeg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// CameraFrustum returns the triangular stage-plane projection of a camera's
// field of view: apex at the pose position, then far-left and far-right
// corners. The far corners are symmetric about the forward ray for any
// fovDeg in (0, 180); the catalog rejects values outside that range before
// they reach here.
func CameraFrustum(p Pose, fovDeg, length float64) [3]Point {
	w := length * math.Tan(fovDeg*math.Pi/360)
	lx, ly := RotatePoint(-w, length, p.Rotation)
	rx, ry := RotatePoint(w, length, p.Rotation)
	return [3]Point{
		{p.X, p.Y},
		{p.X + lx, p.Y + ly},
		{p.X + rx, p.Y + ry},
	}
}

// beamDivisors maps a light type to the divisor applied to intensity when
// deriving beam length. Harder sources throw further per unit of intensity.
var beamDivisors = map[LightType]float64{
	LightKey:       15,
	LightFill:      15,
	LightBack:      15,
	LightLEDPanel:  25,
	LightPractical: 40,
	LightNatural:   10,
}

// BeamLength returns the throw reach for a light of the given type and
// intensity. Intensity 0 yields a zero-length beam; that is degenerate but
// not an error.
func BeamLength(t LightType, intensity float64) float64 {
	k, ok := beamDivisors[t]
	if !ok {
		k = beamDivisors[LightKey]
	}
	return intensity / k
}

// LightBeam returns the start and end points of a light's throw segment on
// the stage plane.
func LightBeam(p Pose, intensity float64, t LightType) (Point, Point) {
	dx, dy := RotatePoint(0, BeamLength(t, intensity), p.Rotation)
	return Point{p.X, p.Y}, Point{p.X + dx, p.Y + dy}
}
