package previz

import (
	"encoding/json"
	"time"
)

// FormatVersion tags exported documents. The tag is non-breaking: importers
// accept unknown future tags by best-effort field mapping and reject a
// document only for missing required fields, never for unknown ones.
const FormatVersion = "2"

// Document is the portable snapshot of a scene. Created and FormatVersion
// are metadata; round-trip equality covers SceneName and Elements only.
type Document struct {
	SceneName     string        `json:"sceneName"`
	Created       string        `json:"created"`
	Elements      SceneElements `json:"elements"`
	FormatVersion string        `json:"formatVersion"`
}

// ExportScene captures a scene into a portable document stamped with the
// current UTC time.
func ExportScene(s Scene, now time.Time) Document {
	return Document{
		SceneName:     s.Name,
		Created:       now.UTC().Format(time.RFC3339),
		Elements:      s.Elements.clone(),
		FormatVersion: FormatVersion,
	}
}

// ParseDocument decodes and validates a scene document. It returns a
// MalformedDocumentError when the payload is not JSON, when sceneName or
// elements are missing, or when any element fails catalog validation.
// Unknown top-level or element fields are ignored.
func ParseDocument(data []byte) (Document, error) {
	var raw struct {
		SceneName     string          `json:"sceneName"`
		Created       string          `json:"created"`
		Elements      json.RawMessage `json:"elements"`
		FormatVersion string          `json:"formatVersion"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &MalformedDocumentError{Reason: err.Error()}
	}
	if raw.SceneName == "" {
		return Document{}, &MalformedDocumentError{Reason: "missing sceneName"}
	}
	if len(raw.Elements) == 0 || string(raw.Elements) == "null" {
		return Document{}, &MalformedDocumentError{Reason: "missing elements"}
	}

	var els SceneElements
	if err := json.Unmarshal(raw.Elements, &els); err != nil {
		return Document{}, &MalformedDocumentError{Reason: "elements: " + err.Error()}
	}
	for _, k := range KindOrder {
		for _, el := range els.Sequence(k) {
			if err := ValidateElement(el); err != nil {
				return Document{}, &MalformedDocumentError{Reason: string(k) + ": " + err.Error()}
			}
		}
	}

	return Document{
		SceneName:     raw.SceneName,
		Created:       raw.Created,
		Elements:      els,
		FormatVersion: raw.FormatVersion,
	}, nil
}

// DecodeElement decodes one element payload of the given kind, used by the
// add and update endpoints. Field values are validated later by the catalog;
// this only maps JSON onto the kind's concrete type.
func DecodeElement(kind Kind, data []byte) (Element, error) {
	var (
		el  Element
		err error
	)
	switch kind {
	case KindCamera:
		var v Camera
		err = json.Unmarshal(data, &v)
		el = v
	case KindLight:
		var v Light
		err = json.Unmarshal(data, &v)
		el = v
	case KindActor:
		var v Actor
		err = json.Unmarshal(data, &v)
		el = v
	case KindSetPiece:
		var v SetPiece
		err = json.Unmarshal(data, &v)
		el = v
	case KindVehicle:
		var v Vehicle
		err = json.Unmarshal(data, &v)
		el = v
	case KindScreen:
		var v Screen
		err = json.Unmarshal(data, &v)
		el = v
	case KindGreenScreen:
		var v GreenScreen
		err = json.Unmarshal(data, &v)
		el = v
	default:
		return nil, &ValidationError{Field: "kind", Reason: "unknown element kind"}
	}
	if err != nil {
		return nil, err
	}
	return el, nil
}
