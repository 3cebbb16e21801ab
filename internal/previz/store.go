package previz

// Store is the persistence abstraction for hosted scenes. Implementations can
// be in-memory or remote; the Repository uses Store for all reads and writes
// and callers of Repository never see which Store is in use.
type Store interface {
	GetScene(id SceneID) (*Scene, bool)
	SetScene(s *Scene)
	DeleteScene(id SceneID)
	ListSceneIDs() []SceneID
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	scenes map[SceneID]*Scene
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		scenes: make(map[SceneID]*Scene),
	}
}

// GetScene implements Store.GetScene.
func (s *InMemoryStore) GetScene(id SceneID) (*Scene, bool) {
	sc, ok := s.scenes[id]
	return sc, ok
}

// SetScene implements Store.SetScene.
func (s *InMemoryStore) SetScene(sc *Scene) {
	s.scenes[sc.ID] = sc
}

// DeleteScene implements Store.DeleteScene.
func (s *InMemoryStore) DeleteScene(id SceneID) {
	delete(s.scenes, id)
}

// ListSceneIDs implements Store.ListSceneIDs.
func (s *InMemoryStore) ListSceneIDs() []SceneID {
	ids := make([]SceneID, 0, len(s.scenes))
	for id := range s.scenes {
		ids = append(ids, id)
	}
	return ids
}
