package previz

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Built-in scene templates. Applying a template atomically replaces the whole
// element set; templates are static catalog data, never computed.

// TemplateThreePoint lights a single subject with the classic key/fill/back
// arrangement and one camera facing north-to-subject.
const TemplateThreePoint = "Three-Point Lighting"

// TemplateInterview is a two-camera seated interview setup.
const TemplateInterview = "Interview Setup"

// BuiltinTemplates returns the templates shipped with the catalog.
func BuiltinTemplates() map[string]SceneElements {
	return map[string]SceneElements{
		TemplateThreePoint: {
			Cameras: []Camera{
				{Name: "Main Camera", X: 0, Y: -8, Z: 5, Rotation: 0, FocalLength: 50},
			},
			Lights: []Light{
				{Name: "Key Light", Type: LightKey, X: 3, Y: 3, Z: 6, Rotation: 180, Intensity: 100},
				{Name: "Fill Light", Type: LightFill, X: -3, Y: 3, Z: 5, Rotation: 180, Intensity: 50},
				{Name: "Back Light", Type: LightBack, X: 0, Y: -3, Z: 7, Rotation: 0, Intensity: 70},
			},
			Actors: []Actor{
				{Name: "Subject", X: 0, Y: 0, Notes: "Center frame"},
			},
		},
		TemplateInterview: {
			Cameras: []Camera{
				{Name: "A-Cam", X: -2, Y: -6, Z: 5, Rotation: 0, FocalLength: 85},
				{Name: "B-Cam", X: 2, Y: -6, Z: 5, Rotation: 0, FocalLength: 50},
			},
			Actors: []Actor{
				{Name: "Interviewee", X: 0, Y: 0, Notes: "Seated, looking camera left"},
			},
		},
	}
}

// templateFile is the on-disk YAML schema for user-supplied templates.
type templateFile struct {
	Templates []struct {
		Name     string        `yaml:"name"`
		Elements SceneElements `yaml:"elements"`
	} `yaml:"templates"`
}

// LoadTemplatesYAML parses user-supplied templates from YAML and validates
// every element through the catalog. A template with an empty name or an
// invalid element fails the whole load.
func LoadTemplatesYAML(data []byte) (map[string]SceneElements, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	out := make(map[string]SceneElements, len(f.Templates))
	for _, t := range f.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template with empty name")
		}
		for _, k := range KindOrder {
			for _, el := range t.Elements.Sequence(k) {
				if err := ValidateElement(el); err != nil {
					return nil, fmt.Errorf("template %q: %w", t.Name, err)
				}
			}
		}
		out[t.Name] = t.Elements.clone()
	}
	return out, nil
}

// TemplateNames returns the sorted names of the given template set.
func TemplateNames(templates map[string]SceneElements) []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
