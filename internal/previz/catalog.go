package previz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The catalog is the single authority for acceptable field values and for
// per-kind visual attributes. Mutation paths and import both validate
// through ValidateElement before any state changes.

// focalLengthFOV maps focal length in millimetres to the field of view in
// degrees used for frustum projection. FOV decreases monotonically as focal
// length increases; every entry is inside (0, 180) so the geometry kernel
// never sees a degenerate FOV.
var focalLengthFOV = map[int]float64{
	16:  107,
	24:  84,
	35:  63,
	50:  47,
	85:  29,
	135: 18,
	200: 12,
}

// DefaultFocalLength is the preset used when a focal length label cannot be
// parsed back to a known table entry.
const DefaultFocalLength = 50

// focalPresetLabels are the human-facing focal length choices, ascending.
var focalPresetLabels = []string{
	"16mm (Ultra Wide)",
	"24mm (Wide)",
	"35mm (Classic)",
	"50mm (Normal)",
	"85mm (Portrait)",
	"135mm (Telephoto)",
	"200mm (Long Telephoto)",
}

// FocalLengthPresets returns the preset labels in ascending focal order.
func FocalLengthPresets() []string {
	return append([]string(nil), focalPresetLabels...)
}

// FocalLengths returns the table's focal lengths in ascending order.
func FocalLengths() []int {
	out := make([]int, 0, len(focalLengthFOV))
	for mm := range focalLengthFOV {
		out = append(out, mm)
	}
	sort.Ints(out)
	return out
}

// FOVForFocalLength returns the field of view for a focal length in the table.
func FOVForFocalLength(mm int) (float64, bool) {
	fov, ok := focalLengthFOV[mm]
	return fov, ok
}

// FocalLengthFromLabel parses a preset label like "50mm (Normal)" back to its
// focal length. A label that does not parse, or parses to a value outside the
// table, falls back to DefaultFocalLength rather than failing.
func FocalLengthFromLabel(label string) int {
	head, _, found := strings.Cut(label, "mm")
	if !found {
		return DefaultFocalLength
	}
	mm, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return DefaultFocalLength
	}
	if _, ok := focalLengthFOV[mm]; !ok {
		return DefaultFocalLength
	}
	return mm
}

var lightTypes = map[LightType]bool{
	LightKey: true, LightFill: true, LightBack: true,
	LightLEDPanel: true, LightPractical: true, LightNatural: true,
}

var setPieceTypes = map[SetPieceType]bool{
	SetPieceTable: true, SetPieceChair: true, SetPieceSofa: true,
	SetPieceDesk: true, SetPieceWall: true, SetPieceDoor: true,
	SetPieceWindow: true,
}

var vehicleTypes = map[VehicleType]bool{
	VehicleCar: true, VehicleVan: true, VehicleTruck: true,
	VehicleMotorcycle: true, VehicleBicycle: true,
}

var sizeLabels = map[SizeLabel]bool{
	SizeSmall: true, SizeMedium: true, SizeLarge: true,
}

// greenScreenWidths maps a green screen size to its wall-segment width in
// stage units.
var greenScreenWidths = map[SizeLabel]float64{
	SizeSmall:  3,
	SizeMedium: 6,
	SizeLarge:  9,
}

// GreenScreenHeight is the top of a projected green screen wall, in stage units.
const GreenScreenHeight = 8.0

// GreenScreenWidth returns the wall-segment width for a green screen size.
func GreenScreenWidth(size SizeLabel) float64 {
	if w, ok := greenScreenWidths[size]; ok {
		return w
	}
	return greenScreenWidths[SizeMedium]
}

// ValidateElement checks every field of the element against its kind's
// declared ranges and enums, returning a ValidationError naming the first
// offending field.
func ValidateElement(el Element) error {
	if el.ElementName() == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	switch v := el.(type) {
	case Camera:
		if v.Z < 0 {
			return &ValidationError{Field: "z", Reason: "height must be >= 0"}
		}
		if _, ok := focalLengthFOV[v.FocalLength]; !ok {
			return &ValidationError{
				Field:  "focalLength",
				Reason: fmt.Sprintf("%dmm is not a catalog focal length", v.FocalLength),
			}
		}
	case Light:
		if !lightTypes[v.Type] {
			return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown light type %q", v.Type)}
		}
		if v.Z < 0 {
			return &ValidationError{Field: "z", Reason: "height must be >= 0"}
		}
		if v.Intensity < 0 || v.Intensity > 100 {
			return &ValidationError{Field: "intensity", Reason: "must be within [0, 100]"}
		}
	case Actor:
		// Position and optional move target are unconstrained.
	case SetPiece:
		if !setPieceTypes[v.Type] {
			return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown set piece type %q", v.Type)}
		}
	case Vehicle:
		if !vehicleTypes[v.Type] {
			return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown vehicle type %q", v.Type)}
		}
	case Screen:
		if !sizeLabels[v.Size] {
			return &ValidationError{Field: "size", Reason: fmt.Sprintf("unknown screen size %q", v.Size)}
		}
		if v.Z < 0 {
			return &ValidationError{Field: "z", Reason: "height must be >= 0"}
		}
	case GreenScreen:
		if !sizeLabels[v.Size] {
			return &ValidationError{Field: "size", Reason: fmt.Sprintf("unknown green screen size %q", v.Size)}
		}
	default:
		return &ValidationError{Field: "kind", Reason: "unknown element kind"}
	}
	return nil
}

// normalizeElement wraps any stored rotation into [0, 360) so downstream
// geometry never sees an out-of-range angle.
func normalizeElement(el Element) Element {
	switch v := el.(type) {
	case Camera:
		v.Rotation = NormalizeAngle(v.Rotation)
		return v
	case Light:
		v.Rotation = NormalizeAngle(v.Rotation)
		return v
	case Vehicle:
		v.Rotation = NormalizeAngle(v.Rotation)
		return v
	case GreenScreen:
		v.Rotation = NormalizeAngle(v.Rotation)
		return v
	}
	return el
}

// MarkerStyle is the rendering attribute set for an element's point marker.
type MarkerStyle struct {
	Size   float64
	Color  string
	Symbol string
}

// lightColors selects the marker and beam color by light type.
var lightColors = map[LightType]string{
	LightKey:       "gold",
	LightFill:      "orange",
	LightBack:      "khaki",
	LightLEDPanel:  "paleturquoise",
	LightPractical: "navajowhite",
	LightNatural:   "skyblue",
}

// MarkerStyleFor returns the catalog marker attributes for an element.
func MarkerStyleFor(el Element) MarkerStyle {
	switch v := el.(type) {
	case Camera:
		return MarkerStyle{Size: 12, Color: "royalblue", Symbol: "square"}
	case Light:
		color, ok := lightColors[v.Type]
		if !ok {
			color = lightColors[LightKey]
		}
		return MarkerStyle{Size: 10, Color: color, Symbol: "diamond"}
	case Actor:
		return MarkerStyle{Size: 15, Color: "crimson", Symbol: "circle"}
	case SetPiece:
		return MarkerStyle{Size: 10, Color: "seagreen", Symbol: "square"}
	case Vehicle:
		return MarkerStyle{Size: 12, Color: "mediumpurple", Symbol: "square"}
	case Screen:
		return MarkerStyle{Size: 11, Color: "slategray", Symbol: "square"}
	case GreenScreen:
		return MarkerStyle{Size: 10, Color: "limegreen", Symbol: "square"}
	}
	return MarkerStyle{Size: 10, Color: "gray", Symbol: "circle"}
}
