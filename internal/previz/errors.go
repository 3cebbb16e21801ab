package previz

import (
	"errors"
	"fmt"
)

// ErrSceneNotFound is returned when a scene id references no hosted scene.
var ErrSceneNotFound = errors.New("scene not found")

// ValidationError reports a field value outside its declared range or enum.
// The offending mutation is rejected and the scene is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NotFoundError reports an element id that is out of range for its kind.
type NotFoundError struct {
	Kind Kind
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element %d in %s", e.ID, e.Kind)
}

// UnknownTemplateError reports an unrecognized template name.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Name)
}

// MalformedDocumentError reports an import document that is missing required
// fields or carries elements that fail catalog validation. The prior scene
// state is preserved.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return "malformed scene document: " + e.Reason
}
