package previz

import (
	"fmt"
	"strings"
	"time"
)

const reportRule = "====================================="
const sectionRule = "-------------------------------------"

// kindSection maps each kind to its report heading and checklist noun.
var kindSections = map[Kind]struct {
	heading string
	noun    string
}{
	KindCamera:      {"CAMERAS", "Camera(s)"},
	KindLight:       {"LIGHTING", "Light(s)"},
	KindActor:       {"TALENT", "Actor(s)"},
	KindSetPiece:    {"SET PIECES", "Set Piece(s)"},
	KindVehicle:     {"VEHICLES", "Vehicle(s)"},
	KindScreen:      {"SCREENS", "Screen(s)"},
	KindGreenScreen: {"GREEN SCREENS", "Green Screen(s)"},
}

// BuildSetupReport renders the human-readable production setup report.
// Cameras, lighting, and talent sections always appear (possibly with count
// 0); the remaining kinds appear only when non-empty. The trailing equipment
// checklist has one line per kind with a non-zero count.
func BuildSetupReport(s Scene, now time.Time) string {
	var b strings.Builder

	b.WriteString("PRODUCTION SETUP REPORT\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Scene: %s\n", s.Name)
	fmt.Fprintf(&b, "Date Generated: %s\n", now.Format("2006-01-02 15:04"))
	b.WriteString(reportRule + "\n")

	for _, k := range KindOrder {
		count := s.Elements.Count(k)
		always := k == KindCamera || k == KindLight || k == KindActor
		if count == 0 && !always {
			continue
		}

		fmt.Fprintf(&b, "\n%s (%d)\n%s\n", kindSections[k].heading, count, sectionRule)
		for i, el := range s.Elements.Sequence(k) {
			writeReportEntry(&b, i+1, el)
		}
	}

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("Equipment Checklist:\n")
	for _, k := range KindOrder {
		if count := s.Elements.Count(k); count > 0 {
			fmt.Fprintf(&b, "  ☐ %d %s\n", count, kindSections[k].noun)
		}
	}

	return b.String()
}

func writeReportEntry(b *strings.Builder, n int, el Element) {
	fmt.Fprintf(b, "%d. %s\n", n, el.ElementName())
	switch v := el.(type) {
	case Camera:
		fov, _ := FOVForFocalLength(v.FocalLength)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f, %.1f)\n", v.X, v.Y, v.Z)
		fmt.Fprintf(b, "   Rotation: %.0f°\n", v.Rotation)
		fmt.Fprintf(b, "   Focal Length: %dmm (FOV %.0f°)\n", v.FocalLength, fov)
	case Light:
		fmt.Fprintf(b, "   Type: %s\n", v.Type)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f, %.1f)\n", v.X, v.Y, v.Z)
		fmt.Fprintf(b, "   Rotation: %.0f°\n", v.Rotation)
		fmt.Fprintf(b, "   Intensity: %.0f%%\n", v.Intensity)
	case Actor:
		fmt.Fprintf(b, "   Position: (%.1f, %.1f)\n", v.X, v.Y)
		if v.MoveTo != nil {
			fmt.Fprintf(b, "   Moves To: (%.1f, %.1f)\n", v.MoveTo.X, v.MoveTo.Y)
		}
		if v.Notes != "" {
			fmt.Fprintf(b, "   Notes: %s\n", v.Notes)
		}
	case SetPiece:
		fmt.Fprintf(b, "   Type: %s\n", v.Type)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f)\n", v.X, v.Y)
	case Vehicle:
		fmt.Fprintf(b, "   Type: %s\n", v.Type)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f)\n", v.X, v.Y)
		fmt.Fprintf(b, "   Rotation: %.0f°\n", v.Rotation)
	case Screen:
		fmt.Fprintf(b, "   Size: %s\n", v.Size)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f, %.1f)\n", v.X, v.Y, v.Z)
	case GreenScreen:
		fmt.Fprintf(b, "   Size: %s\n", v.Size)
		fmt.Fprintf(b, "   Position: (%.1f, %.1f)\n", v.X, v.Y)
		fmt.Fprintf(b, "   Rotation: %.0f°\n", v.Rotation)
	}
}
