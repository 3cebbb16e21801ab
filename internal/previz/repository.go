package previz

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultSceneName is used when a scene is created without a name.
const DefaultSceneName = "Untitled Scene"

// Repository defines the contract for accessing and mutating hosted scenes.
// Every mutation is atomic with respect to the scene's invariants: it either
// fully applies or leaves the scene in its last-valid state. Element ids are
// positional within a kind and shift down after a removal in the same kind;
// callers holding a previously-read id must re-resolve it after any removal.
type Repository interface {
	// CreateScene hosts a new empty scene and returns its snapshot.
	CreateScene(name string) Scene

	// DeleteScene drops a hosted scene. Returns ErrSceneNotFound if absent.
	DeleteScene(id SceneID) error

	// SceneSnapshot returns a deep copy of the scene.
	SceneSnapshot(id SceneID) (Scene, error)

	// RenameScene sets the scene's name. Empty names are rejected.
	RenameScene(id SceneID, name string) error

	// SetViewMode stores the scene's current view mode.
	SetViewMode(id SceneID, mode ViewMode) error

	// AddElement validates the element, appends it to its kind's sequence,
	// and returns the new positional id.
	AddElement(id SceneID, kind Kind, el Element) (int, error)

	// UpdateElement validates and replaces the element at elemID in place.
	UpdateElement(id SceneID, kind Kind, elemID int, el Element) error

	// RemoveElement deletes the element at elemID, shifting later ids down.
	RemoveElement(id SceneID, kind Kind, elemID int) error

	// DuplicateElement deep-copies the element at elemID with an offset
	// position and a "Copy"-suffixed name, appends it, and returns the new
	// id and element.
	DuplicateElement(id SceneID, kind Kind, elemID int) (int, Element, error)

	// ApplyTemplate atomically replaces the scene's entire element set with
	// the named template's literal configuration.
	ApplyTemplate(id SceneID, template string) error

	// ClearElements resets every kind sequence to empty. Scene name and view
	// mode are unaffected.
	ClearElements(id SceneID) error

	// ReplaceElements wholesale-replaces the scene's name and elements.
	// Elements must already have passed catalog validation (import path).
	ReplaceElements(id SceneID, name string, els SceneElements) error

	// TemplateNames lists the available template names, sorted.
	TemplateNames() []string

	// ActiveSceneCount returns the number of hosted scenes. Used for metrics.
	ActiveSceneCount() int
}

// InMemoryRepository is a concurrency-safe in-memory implementation of
// Repository. Within one scene, mutations are serialized by the lock; the
// core operations themselves are synchronous and O(elements) or better.
type InMemoryRepository struct {
	mu        sync.RWMutex
	store     Store
	templates map[string]SceneElements
}

// NewInMemoryRepository constructs a repository with a default in-memory
// store and the built-in templates.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore(), BuiltinTemplates())
}

// NewInMemoryRepositoryWithStore constructs a repository over the given Store
// and template set. Useful for testing or for plugging in a different
// persistence backend; nil templates means built-ins only.
func NewInMemoryRepositoryWithStore(store Store, templates map[string]SceneElements) *InMemoryRepository {
	if templates == nil {
		templates = BuiltinTemplates()
	}
	return &InMemoryRepository{store: store, templates: templates}
}

// CreateScene implements Repository.CreateScene.
func (r *InMemoryRepository) CreateScene(name string) Scene {
	if name == "" {
		name = DefaultSceneName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc := &Scene{
		ID:       SceneID(uuid.NewString()),
		Name:     name,
		ViewMode: ViewPerspective,
	}
	r.store.SetScene(sc)
	return sc.snapshot()
}

// DeleteScene implements Repository.DeleteScene.
func (r *InMemoryRepository) DeleteScene(id SceneID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.GetScene(id); !ok {
		return ErrSceneNotFound
	}
	r.store.DeleteScene(id)
	return nil
}

// SceneSnapshot implements Repository.SceneSnapshot.
func (r *InMemoryRepository) SceneSnapshot(id SceneID) (Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return Scene{}, ErrSceneNotFound
	}
	return sc.snapshot(), nil
}

// RenameScene implements Repository.RenameScene.
func (r *InMemoryRepository) RenameScene(id SceneID, name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	sc.Name = name
	return nil
}

// SetViewMode implements Repository.SetViewMode.
func (r *InMemoryRepository) SetViewMode(id SceneID, mode ViewMode) error {
	if _, ok := ParseViewMode(string(mode)); !ok {
		return &ValidationError{Field: "viewMode", Reason: "unknown view mode"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	sc.ViewMode = mode
	return nil
}

// AddElement implements Repository.AddElement.
func (r *InMemoryRepository) AddElement(id SceneID, kind Kind, el Element) (int, error) {
	if el.Kind() != kind {
		return 0, &ValidationError{Field: "kind", Reason: "element does not match kind"}
	}
	if err := ValidateElement(el); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return 0, ErrSceneNotFound
	}
	return sc.Elements.appendElement(normalizeElement(el)), nil
}

// UpdateElement implements Repository.UpdateElement.
func (r *InMemoryRepository) UpdateElement(id SceneID, kind Kind, elemID int, el Element) error {
	if el.Kind() != kind {
		return &ValidationError{Field: "kind", Reason: "element does not match kind"}
	}
	if err := ValidateElement(el); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	if !sc.Elements.replace(kind, elemID, normalizeElement(el)) {
		return &NotFoundError{Kind: kind, ID: elemID}
	}
	return nil
}

// RemoveElement implements Repository.RemoveElement.
func (r *InMemoryRepository) RemoveElement(id SceneID, kind Kind, elemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	if !sc.Elements.removeAt(kind, elemID) {
		return &NotFoundError{Kind: kind, ID: elemID}
	}
	return nil
}

// DuplicateElement implements Repository.DuplicateElement.
func (r *InMemoryRepository) DuplicateElement(id SceneID, kind Kind, elemID int) (int, Element, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return 0, nil, ErrSceneNotFound
	}
	src, ok := sc.Elements.Get(kind, elemID)
	if !ok {
		return 0, nil, &NotFoundError{Kind: kind, ID: elemID}
	}

	dx, dy := duplicateOffset(kind)
	dup := src.duplicated(dx, dy, CopyName(src.ElementName()))
	return sc.Elements.appendElement(dup), dup, nil
}

// ApplyTemplate implements Repository.ApplyTemplate.
func (r *InMemoryRepository) ApplyTemplate(id SceneID, template string) error {
	els, ok := r.templates[template]
	if !ok {
		return &UnknownTemplateError{Name: template}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	sc.Elements = els.clone()
	return nil
}

// ClearElements implements Repository.ClearElements.
func (r *InMemoryRepository) ClearElements(id SceneID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	sc.Elements = SceneElements{}
	return nil
}

// ReplaceElements implements Repository.ReplaceElements.
func (r *InMemoryRepository) ReplaceElements(id SceneID, name string, els SceneElements) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.store.GetScene(id)
	if !ok {
		return ErrSceneNotFound
	}
	sc.Name = name
	sc.Elements = normalizeElements(els.clone())
	return nil
}

// TemplateNames implements Repository.TemplateNames.
func (r *InMemoryRepository) TemplateNames() []string {
	return TemplateNames(r.templates)
}

// ActiveSceneCount implements Repository.ActiveSceneCount.
func (r *InMemoryRepository) ActiveSceneCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store.ListSceneIDs())
}

// normalizeElements wraps every stored rotation into [0, 360).
func normalizeElements(els SceneElements) SceneElements {
	for i, c := range els.Cameras {
		els.Cameras[i].Rotation = NormalizeAngle(c.Rotation)
	}
	for i, l := range els.Lights {
		els.Lights[i].Rotation = NormalizeAngle(l.Rotation)
	}
	for i, v := range els.Vehicles {
		els.Vehicles[i].Rotation = NormalizeAngle(v.Rotation)
	}
	for i, g := range els.GreenScreens {
		els.GreenScreens[i].Rotation = NormalizeAngle(g.Rotation)
	}
	return els
}
