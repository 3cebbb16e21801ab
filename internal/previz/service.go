package previz

import (
	"time"
)

// Service composes the repository with projection and serialization. The
// repository owns scene state; the service owns the stage dimensions and the
// pure read-side transforms. The core here performs no I/O and no logging;
// surfacing errors is the HTTP layer's job.
type Service struct {
	repo  Repository
	stage Stage
	now   func() time.Time
}

// NewService returns a Service over repo. A zero stage falls back to
// DefaultStage.
func NewService(repo Repository, stage Stage) *Service {
	if stage == (Stage{}) {
		stage = DefaultStage
	}
	return &Service{repo: repo, stage: stage, now: time.Now}
}

// Stage returns the configured stage bounds.
func (s *Service) Stage() Stage {
	return s.stage
}

// CreateScene hosts a new scene and returns its snapshot.
func (s *Service) CreateScene(name string) Scene {
	return s.repo.CreateScene(name)
}

// Scene returns a deep snapshot of a hosted scene.
func (s *Service) Scene(id SceneID) (Scene, error) {
	return s.repo.SceneSnapshot(id)
}

// DeleteScene drops a hosted scene.
func (s *Service) DeleteScene(id SceneID) error {
	return s.repo.DeleteScene(id)
}

// RenameScene sets the scene name.
func (s *Service) RenameScene(id SceneID, name string) error {
	return s.repo.RenameScene(id, name)
}

// SetViewMode stores the scene's current view mode.
func (s *Service) SetViewMode(id SceneID, mode ViewMode) error {
	return s.repo.SetViewMode(id, mode)
}

// AddElement decodes, validates, and appends one element; returns its id.
func (s *Service) AddElement(id SceneID, kind Kind, payload []byte) (int, error) {
	el, err := DecodeElement(kind, payload)
	if err != nil {
		return 0, err
	}
	return s.repo.AddElement(id, kind, el)
}

// UpdateElement decodes, validates, and replaces the element at elemID.
func (s *Service) UpdateElement(id SceneID, kind Kind, elemID int, payload []byte) error {
	el, err := DecodeElement(kind, payload)
	if err != nil {
		return err
	}
	return s.repo.UpdateElement(id, kind, elemID, el)
}

// RemoveElement deletes the element at elemID; later ids shift down by one.
func (s *Service) RemoveElement(id SceneID, kind Kind, elemID int) error {
	return s.repo.RemoveElement(id, kind, elemID)
}

// DuplicateElement copies the element at elemID and returns the copy's id
// and element.
func (s *Service) DuplicateElement(id SceneID, kind Kind, elemID int) (int, Element, error) {
	return s.repo.DuplicateElement(id, kind, elemID)
}

// ApplyTemplate replaces the scene's elements with the named template.
func (s *Service) ApplyTemplate(id SceneID, template string) error {
	return s.repo.ApplyTemplate(id, template)
}

// ClearScene empties every kind sequence; name and view mode stay.
func (s *Service) ClearScene(id SceneID) error {
	return s.repo.ClearElements(id)
}

// TemplateNames lists available templates.
func (s *Service) TemplateNames() []string {
	return s.repo.TemplateNames()
}

// Render projects the scene into a RenderModel for the given view mode. An
// empty mode uses the scene's stored view mode.
func (s *Service) Render(id SceneID, mode ViewMode) (RenderModel, error) {
	sc, err := s.repo.SceneSnapshot(id)
	if err != nil {
		return RenderModel{}, err
	}
	if mode == "" {
		mode = sc.ViewMode
	}
	if _, ok := ParseViewMode(string(mode)); !ok {
		return RenderModel{}, &ValidationError{Field: "view", Reason: "unknown view mode"}
	}
	return Project(sc, mode, s.stage), nil
}

// Export captures the scene into a portable document.
func (s *Service) Export(id SceneID) (Document, error) {
	sc, err := s.repo.SceneSnapshot(id)
	if err != nil {
		return Document{}, err
	}
	return ExportScene(sc, s.now()), nil
}

// Import parses and validates a scene document, then wholesale-replaces the
// scene's name and elements. On any parse or validation failure the scene is
// left untouched.
func (s *Service) Import(id SceneID, data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return s.repo.ReplaceElements(id, doc.SceneName, doc.Elements)
}

// Report renders the scene's production setup report.
func (s *Service) Report(id SceneID) (string, error) {
	sc, err := s.repo.SceneSnapshot(id)
	if err != nil {
		return "", err
	}
	return BuildSetupReport(sc, s.now()), nil
}
