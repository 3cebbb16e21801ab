package previz

import "fmt"

// The projector turns a scene snapshot plus a view mode into a RenderModel:
// an ordered sequence of backend-agnostic draw primitives. The rendering
// collaborator consumes the primitives and the viewpoint descriptor and
// produces pixels; nothing here depends on a specific backend.

// Vec3 is a point in stage space. Z is height above the floor.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PrimitiveType discriminates draw primitives.
type PrimitiveType string

const (
	PrimPolyline PrimitiveType = "polyline"
	PrimMarker   PrimitiveType = "marker"
	PrimRegion   PrimitiveType = "region"
)

// Primitive is one draw command. Points is set for polylines and regions,
// Position for markers.
type Primitive struct {
	Type     PrimitiveType `json:"type"`
	Points   []Vec3        `json:"points,omitempty"`
	Position *Vec3         `json:"position,omitempty"`
	Color    string        `json:"color"`
	Size     float64       `json:"size,omitempty"`
	Width    float64       `json:"width,omitempty"`
	Symbol   string        `json:"symbol,omitempty"`
	Label    string        `json:"label,omitempty"`
	Tooltip  string        `json:"tooltip,omitempty"`
	Dashed   bool          `json:"dashed,omitempty"`
	Opacity  float64       `json:"opacity,omitempty"`
}

// Viewpoint is the external viewing transform descriptor for a view mode.
// Applying it is the rendering collaborator's concern.
type Viewpoint struct {
	Eye Vec3 `json:"eye"`
	Up  Vec3 `json:"up"`
}

// Stage is the bounded rectangular stage the scene is laid out on.
type Stage struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	MaxHeight float64 `json:"maxHeight"`
}

// DefaultStage is a 20x20 stage with 10 units of headroom.
var DefaultStage = Stage{Width: 20, Depth: 20, MaxHeight: 10}

// RenderModel is the full renderable geometry set for one scene and view mode.
type RenderModel struct {
	SceneName  string      `json:"sceneName"`
	ViewMode   ViewMode    `json:"viewMode"`
	Stage      Stage       `json:"stage"`
	Viewpoint  Viewpoint   `json:"viewpoint"`
	Primitives []Primitive `json:"primitives"`
}

const (
	stageFillColor       = "whitesmoke"
	stageLineColor       = "lightgray"
	directionLength      = 2.0
	gridSpacing          = 2.0
	beamOpacity          = 0.6
	greenScreenOpacity   = 0.5
	stageRegionOpacity   = 0.9
	movementIndicatorDot = 6.0
)

// viewpointFor returns the per-mode eye position and up vector. The floor
// plan looks straight down with +y up; the side view looks along +x.
func viewpointFor(mode ViewMode) Viewpoint {
	switch mode {
	case ViewFloorPlan:
		return Viewpoint{Eye: Vec3{0, 0, 2.5}, Up: Vec3{0, 1, 0}}
	case ViewSideView:
		return Viewpoint{Eye: Vec3{2.5, 0, 0.5}, Up: Vec3{0, 0, 1}}
	default:
		return Viewpoint{Eye: Vec3{1.5, -1.5, 1.5}, Up: Vec3{0, 0, 1}}
	}
}

// Project maps a scene snapshot and view mode into a RenderModel. FloorPlan
// flattens every element to z=0 and swaps frusta/walls for 2D direction and
// extent indicators; Perspective and SideView produce the identical model and
// differ only in the viewpoint descriptor.
func Project(s Scene, mode ViewMode, stage Stage) RenderModel {
	if stage == (Stage{}) {
		stage = DefaultStage
	}
	flat := mode == ViewFloorPlan

	m := RenderModel{
		SceneName: s.Name,
		ViewMode:  mode,
		Stage:     stage,
		Viewpoint: viewpointFor(mode),
	}

	m.Primitives = append(m.Primitives, stagePrimitives(stage, flat)...)

	for _, c := range s.Elements.Cameras {
		m.Primitives = append(m.Primitives, cameraPrimitives(c, flat)...)
	}
	for _, l := range s.Elements.Lights {
		m.Primitives = append(m.Primitives, lightPrimitives(l, flat)...)
	}
	for _, a := range s.Elements.Actors {
		m.Primitives = append(m.Primitives, actorPrimitives(a)...)
	}
	for _, p := range s.Elements.SetPieces {
		m.Primitives = append(m.Primitives, setPiecePrimitives(p)...)
	}
	for _, v := range s.Elements.Vehicles {
		m.Primitives = append(m.Primitives, vehiclePrimitives(v)...)
	}
	for _, sc := range s.Elements.Screens {
		m.Primitives = append(m.Primitives, screenPrimitives(sc, flat)...)
	}
	for _, g := range s.Elements.GreenScreens {
		m.Primitives = append(m.Primitives, greenScreenPrimitives(g, flat)...)
	}

	return m
}

// stagePrimitives draws the stage bounds: a filled outlined rectangle on the
// floor plan, an outline plus floor grid in the spatial views.
func stagePrimitives(stage Stage, flat bool) []Primitive {
	hw, hd := stage.Width/2, stage.Depth/2
	corners := []Vec3{
		{-hw, -hd, 0}, {hw, -hd, 0}, {hw, hd, 0}, {-hw, hd, 0}, {-hw, -hd, 0},
	}

	out := []Primitive{}
	if flat {
		out = append(out, Primitive{
			Type:    PrimRegion,
			Points:  corners[:4],
			Color:   stageFillColor,
			Opacity: stageRegionOpacity,
		})
	} else {
		for x := -hw; x <= hw; x += gridSpacing {
			out = append(out, Primitive{
				Type:   PrimPolyline,
				Points: []Vec3{{x, -hd, 0}, {x, hd, 0}},
				Color:  stageLineColor,
				Width:  1,
			})
		}
		for y := -hd; y <= hd; y += gridSpacing {
			out = append(out, Primitive{
				Type:   PrimPolyline,
				Points: []Vec3{{-hw, y, 0}, {hw, y, 0}},
				Color:  stageLineColor,
				Width:  1,
			})
		}
	}
	out = append(out, Primitive{
		Type:   PrimPolyline,
		Points: corners,
		Color:  "dimgray",
		Width:  2,
	})
	return out
}

func marker(el Element, pos Vec3, tooltip string) Primitive {
	style := MarkerStyleFor(el)
	return Primitive{
		Type:     PrimMarker,
		Position: &pos,
		Color:    style.Color,
		Size:     style.Size,
		Symbol:   style.Symbol,
		Label:    el.ElementName(),
		Tooltip:  tooltip,
	}
}

func elementZ(z float64, flat bool) float64 {
	if flat {
		return 0
	}
	return z
}

func cameraPrimitives(c Camera, flat bool) []Primitive {
	fov, _ := FOVForFocalLength(c.FocalLength)
	tooltip := fmt.Sprintf("%s | Position: (%.1f, %.1f, %.1f) | Rotation: %.0f° | Focal Length: %dmm | FOV: %.0f°",
		c.Name, c.X, c.Y, c.Z, c.Rotation, c.FocalLength, fov)

	z := elementZ(c.Z, flat)
	style := MarkerStyleFor(c)
	out := []Primitive{marker(c, Vec3{c.X, c.Y, z}, tooltip)}

	if flat {
		dx, dy := RotatePoint(0, directionLength, c.Rotation)
		out = append(out, Primitive{
			Type:   PrimPolyline,
			Points: []Vec3{{c.X, c.Y, 0}, {c.X + dx, c.Y + dy, 0}},
			Color:  style.Color,
			Width:  3,
			Dashed: true,
		})
		return out
	}

	f := CameraFrustum(Pose{X: c.X, Y: c.Y, Rotation: c.Rotation}, fov, DefaultFrustumLength)
	out = append(out, Primitive{
		Type: PrimPolyline,
		Points: []Vec3{
			{f[0].X, f[0].Y, z},
			{f[1].X, f[1].Y, z},
			{f[2].X, f[2].Y, z},
			{f[0].X, f[0].Y, z},
		},
		Color: style.Color,
		Width: 2,
	})
	return out
}

func lightPrimitives(l Light, flat bool) []Primitive {
	tooltip := fmt.Sprintf("%s | Type: %s | Position: (%.1f, %.1f, %.1f) | Rotation: %.0f° | Intensity: %.0f%%",
		l.Name, l.Type, l.X, l.Y, l.Z, l.Rotation, l.Intensity)

	z := elementZ(l.Z, flat)
	style := MarkerStyleFor(l)
	out := []Primitive{marker(l, Vec3{l.X, l.Y, z}, tooltip)}

	start, end := LightBeam(Pose{X: l.X, Y: l.Y, Rotation: l.Rotation}, l.Intensity, l.Type)
	out = append(out, Primitive{
		Type:    PrimPolyline,
		Points:  []Vec3{{start.X, start.Y, z}, {end.X, end.Y, z}},
		Color:   style.Color,
		Width:   3,
		Opacity: beamOpacity,
	})
	return out
}

func actorPrimitives(a Actor) []Primitive {
	tooltip := fmt.Sprintf("%s | Position: (%.1f, %.1f)", a.Name, a.X, a.Y)
	if a.MoveTo != nil {
		tooltip += fmt.Sprintf(" | Moves to: (%.1f, %.1f)", a.MoveTo.X, a.MoveTo.Y)
	}
	if a.Notes != "" {
		tooltip += " | Notes: " + a.Notes
	}

	style := MarkerStyleFor(a)
	out := []Primitive{marker(a, Vec3{a.X, a.Y, 0}, tooltip)}

	if a.MoveTo != nil {
		target := Vec3{a.MoveTo.X, a.MoveTo.Y, 0}
		out = append(out, Primitive{
			Type:   PrimPolyline,
			Points: []Vec3{{a.X, a.Y, 0}, target},
			Color:  style.Color,
			Width:  2,
			Dashed: true,
		})
		out = append(out, Primitive{
			Type:     PrimMarker,
			Position: &target,
			Color:    style.Color,
			Size:     movementIndicatorDot,
			Symbol:   "circle",
		})
	}
	return out
}

func setPiecePrimitives(p SetPiece) []Primitive {
	tooltip := fmt.Sprintf("%s | Type: %s | Position: (%.1f, %.1f)", p.Name, p.Type, p.X, p.Y)
	return []Primitive{marker(p, Vec3{p.X, p.Y, 0}, tooltip)}
}

func vehiclePrimitives(v Vehicle) []Primitive {
	tooltip := fmt.Sprintf("%s | Type: %s | Position: (%.1f, %.1f) | Rotation: %.0f°",
		v.Name, v.Type, v.X, v.Y, v.Rotation)

	style := MarkerStyleFor(v)
	dx, dy := RotatePoint(0, directionLength, v.Rotation)
	return []Primitive{
		marker(v, Vec3{v.X, v.Y, 0}, tooltip),
		{
			Type:   PrimPolyline,
			Points: []Vec3{{v.X, v.Y, 0}, {v.X + dx, v.Y + dy, 0}},
			Color:  style.Color,
			Width:  3,
			Dashed: true,
		},
	}
}

func screenPrimitives(s Screen, flat bool) []Primitive {
	tooltip := fmt.Sprintf("%s | Size: %s | Position: (%.1f, %.1f, %.1f)",
		s.Name, s.Size, s.X, s.Y, s.Z)
	return []Primitive{marker(s, Vec3{s.X, s.Y, elementZ(s.Z, flat)}, tooltip)}
}

// greenScreenPrimitives draws the wall segment: a floor-level extent line on
// the floor plan, a vertical quad from z=0 to GreenScreenHeight otherwise.
func greenScreenPrimitives(g GreenScreen, flat bool) []Primitive {
	tooltip := fmt.Sprintf("%s | Size: %s | Position: (%.1f, %.1f) | Rotation: %.0f°",
		g.Name, g.Size, g.X, g.Y, g.Rotation)

	w := GreenScreenWidth(g.Size)
	lx, ly := RotatePoint(-w/2, 0, g.Rotation)
	rx, ry := RotatePoint(w/2, 0, g.Rotation)
	x1, y1 := g.X+lx, g.Y+ly
	x2, y2 := g.X+rx, g.Y+ry

	style := MarkerStyleFor(g)
	out := []Primitive{marker(g, Vec3{g.X, g.Y, 0}, tooltip)}

	if flat {
		out = append(out, Primitive{
			Type:   PrimPolyline,
			Points: []Vec3{{x1, y1, 0}, {x2, y2, 0}},
			Color:  style.Color,
			Width:  4,
		})
		return out
	}

	out = append(out, Primitive{
		Type: PrimRegion,
		Points: []Vec3{
			{x1, y1, 0}, {x2, y2, 0},
			{x2, y2, GreenScreenHeight}, {x1, y1, GreenScreenHeight},
		},
		Color:   style.Color,
		Opacity: greenScreenOpacity,
	})
	return out
}
