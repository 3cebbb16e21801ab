package previz

import (
	"errors"
	"testing"
)

func newTestRepo(t *testing.T) (*InMemoryRepository, SceneID) {
	t.Helper()
	repo := NewInMemoryRepository()
	sc := repo.CreateScene("Test Scene")
	return repo, sc.ID
}

func addLight(t *testing.T, repo *InMemoryRepository, id SceneID, name string) int {
	t.Helper()
	lid, err := repo.AddElement(id, KindLight, Light{
		Name: name, Type: LightKey, X: 1, Y: 2, Z: 3, Intensity: 80,
	})
	if err != nil {
		t.Fatalf("add light %q: %v", name, err)
	}
	return lid
}

func TestRepository_AddElement_sequential_ids(t *testing.T) {
	repo, id := newTestRepo(t)

	for want := 0; want < 3; want++ {
		got := addLight(t, repo, id, "L")
		if got != want {
			t.Errorf("add #%d returned id %d", want, got)
		}
	}
}

func TestRepository_AddElement_validation_leaves_scene_unchanged(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "A")

	_, err := repo.AddElement(id, KindLight, Light{Name: "Bad", Type: LightKey, Intensity: 150})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	sc, _ := repo.SceneSnapshot(id)
	if len(sc.Elements.Lights) != 1 {
		t.Errorf("light count after rejected add = %d, want 1", len(sc.Elements.Lights))
	}
}

func TestRepository_AddElement_kind_mismatch(t *testing.T) {
	repo, id := newTestRepo(t)

	_, err := repo.AddElement(id, KindCamera, Light{Name: "L", Type: LightKey, Intensity: 10})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for kind mismatch, got %v", err)
	}
}

func TestRepository_AddElement_normalizes_rotation(t *testing.T) {
	repo, id := newTestRepo(t)

	cid, err := repo.AddElement(id, KindCamera, Camera{Name: "C", Rotation: 450, FocalLength: 50})
	if err != nil {
		t.Fatalf("add camera: %v", err)
	}

	sc, _ := repo.SceneSnapshot(id)
	if got := sc.Elements.Cameras[cid].Rotation; got != 90 {
		t.Errorf("stored rotation = %v, want 90", got)
	}
}

func TestRepository_UpdateElement(t *testing.T) {
	repo, id := newTestRepo(t)
	lid := addLight(t, repo, id, "A")

	err := repo.UpdateElement(id, KindLight, lid, Light{
		Name: "A", Type: LightFill, X: 9, Intensity: 40,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	sc, _ := repo.SceneSnapshot(id)
	if sc.Elements.Lights[lid].Type != LightFill || sc.Elements.Lights[lid].X != 9 {
		t.Errorf("update not applied: %+v", sc.Elements.Lights[lid])
	}
}

func TestRepository_UpdateElement_out_of_range(t *testing.T) {
	repo, id := newTestRepo(t)

	err := repo.UpdateElement(id, KindLight, 0, Light{Name: "A", Type: LightKey, Intensity: 1})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfErr.Kind != KindLight || nfErr.ID != 0 {
		t.Errorf("NotFoundError carries %s/%d", nfErr.Kind, nfErr.ID)
	}
}

func TestRepository_RemoveElement_shifts_ids(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "A")
	addLight(t, repo, id, "B")
	addLight(t, repo, id, "C")

	if err := repo.RemoveElement(id, KindLight, 0); err != nil {
		t.Fatalf("remove 0: %v", err)
	}
	sc, _ := repo.SceneSnapshot(id)
	if len(sc.Elements.Lights) != 2 || sc.Elements.Lights[0].Name != "B" || sc.Elements.Lights[1].Name != "C" {
		t.Fatalf("after first remove: %+v", sc.Elements.Lights)
	}

	if err := repo.RemoveElement(id, KindLight, 0); err != nil {
		t.Fatalf("remove 0 again: %v", err)
	}
	sc, _ = repo.SceneSnapshot(id)
	if len(sc.Elements.Lights) != 1 || sc.Elements.Lights[0].Name != "C" {
		t.Fatalf("after second remove: %+v", sc.Elements.Lights)
	}
}

func TestRepository_RemoveElement_out_of_range(t *testing.T) {
	repo, id := newTestRepo(t)

	err := repo.RemoveElement(id, KindActor, 3)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRepository_DuplicateElement_offsets(t *testing.T) {
	repo, id := newTestRepo(t)

	cid, _ := repo.AddElement(id, KindCamera, Camera{Name: "Cam", X: 0, Y: 0, FocalLength: 50})
	aid, _ := repo.AddElement(id, KindActor, Actor{Name: "Ann", X: 1, Y: 1})

	_, dupCam, err := repo.DuplicateElement(id, KindCamera, cid)
	if err != nil {
		t.Fatalf("duplicate camera: %v", err)
	}
	cam := dupCam.(Camera)
	if cam.X != 2 || cam.Y != 2 {
		t.Errorf("camera copy at (%v, %v), want (2, 2)", cam.X, cam.Y)
	}

	_, dupActor, err := repo.DuplicateElement(id, KindActor, aid)
	if err != nil {
		t.Fatalf("duplicate actor: %v", err)
	}
	actor := dupActor.(Actor)
	if actor.X != 2 || actor.Y != 2 {
		t.Errorf("actor copy at (%v, %v), want (2, 2)", actor.X, actor.Y)
	}
}

func TestRepository_DuplicateElement_naming_chain(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "Key Light")

	wantNames := []string{"Key Light Copy", "Key Light Copy 2", "Key Light Copy 3"}
	src := 0
	for _, want := range wantNames {
		newID, el, err := repo.DuplicateElement(id, KindLight, src)
		if err != nil {
			t.Fatalf("duplicate: %v", err)
		}
		if el.ElementName() != want {
			t.Errorf("copy name = %q, want %q", el.ElementName(), want)
		}
		src = newID
	}
}

func TestRepository_DuplicateElement_deep_copies_move_target(t *testing.T) {
	repo, id := newTestRepo(t)

	aid, _ := repo.AddElement(id, KindActor, Actor{Name: "Ann", MoveTo: &MoveTarget{X: 5, Y: 5}})
	_, dup, err := repo.DuplicateElement(id, KindActor, aid)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	copyActor := dup.(Actor)
	if copyActor.MoveTo == nil {
		t.Fatal("move target should be carried to the copy")
	}

	// Mutating the copy's target must not touch the original.
	copyActor.MoveTo.X = 99
	sc, _ := repo.SceneSnapshot(id)
	if sc.Elements.Actors[aid].MoveTo.X != 5 {
		t.Error("duplicate shares the source's MoveTo pointer")
	}
}

func TestRepository_DuplicateElement_missing(t *testing.T) {
	repo, id := newTestRepo(t)

	_, _, err := repo.DuplicateElement(id, KindVehicle, 0)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRepository_ApplyTemplate(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "Old")

	if err := repo.ApplyTemplate(id, TemplateThreePoint); err != nil {
		t.Fatalf("apply template: %v", err)
	}

	sc, _ := repo.SceneSnapshot(id)
	if len(sc.Elements.Lights) != 3 || len(sc.Elements.Cameras) != 1 || len(sc.Elements.Actors) != 1 {
		t.Errorf("three-point template counts: lights=%d cameras=%d actors=%d",
			len(sc.Elements.Lights), len(sc.Elements.Cameras), len(sc.Elements.Actors))
	}
	if sc.Elements.Lights[0].Name != "Key Light" {
		t.Errorf("first light = %q, want Key Light", sc.Elements.Lights[0].Name)
	}
	if sc.Name != "Test Scene" {
		t.Errorf("template should not rename the scene, got %q", sc.Name)
	}
}

func TestRepository_ApplyTemplate_unknown(t *testing.T) {
	repo, id := newTestRepo(t)

	err := repo.ApplyTemplate(id, "Film Noir")
	var tErr *UnknownTemplateError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected UnknownTemplateError, got %v", err)
	}
}

func TestRepository_ApplyTemplate_does_not_alias_template_data(t *testing.T) {
	repo, id := newTestRepo(t)

	if err := repo.ApplyTemplate(id, TemplateInterview); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := repo.UpdateElement(id, KindCamera, 0, Camera{Name: "A-Cam", X: 99, FocalLength: 85}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// A second application must restore the pristine literal configuration.
	sc2 := repo.CreateScene("Second")
	if err := repo.ApplyTemplate(sc2.ID, TemplateInterview); err != nil {
		t.Fatalf("apply to second scene: %v", err)
	}
	snap, _ := repo.SceneSnapshot(sc2.ID)
	if snap.Elements.Cameras[0].X != -2 {
		t.Errorf("template data mutated by earlier edit: %+v", snap.Elements.Cameras[0])
	}
}

func TestRepository_ClearElements(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "A")
	if err := repo.SetViewMode(id, ViewFloorPlan); err != nil {
		t.Fatalf("set view: %v", err)
	}

	if err := repo.ClearElements(id); err != nil {
		t.Fatalf("clear: %v", err)
	}

	sc, _ := repo.SceneSnapshot(id)
	if sc.Elements.Total() != 0 {
		t.Errorf("total after clear = %d", sc.Elements.Total())
	}
	if sc.Name != "Test Scene" || sc.ViewMode != ViewFloorPlan {
		t.Errorf("clear must keep name and view mode: %q %q", sc.Name, sc.ViewMode)
	}
}

func TestRepository_SceneSnapshot_is_isolated(t *testing.T) {
	repo, id := newTestRepo(t)
	addLight(t, repo, id, "A")

	snap, _ := repo.SceneSnapshot(id)
	snap.Elements.Lights[0].Name = "Tampered"

	fresh, _ := repo.SceneSnapshot(id)
	if fresh.Elements.Lights[0].Name != "A" {
		t.Error("snapshot mutation leaked into the repository")
	}
}

func TestRepository_scene_not_found(t *testing.T) {
	repo := NewInMemoryRepository()

	if _, err := repo.SceneSnapshot(SceneID("missing")); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("SceneSnapshot: %v", err)
	}
	if err := repo.DeleteScene(SceneID("missing")); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("DeleteScene: %v", err)
	}
	if _, err := repo.AddElement(SceneID("missing"), KindActor, Actor{Name: "X"}); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("AddElement: %v", err)
	}
}

func TestRepository_ActiveSceneCount(t *testing.T) {
	repo := NewInMemoryRepository()
	if n := repo.ActiveSceneCount(); n != 0 {
		t.Fatalf("empty repo count = %d", n)
	}

	a := repo.CreateScene("A")
	repo.CreateScene("B")
	if n := repo.ActiveSceneCount(); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	if err := repo.DeleteScene(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := repo.ActiveSceneCount(); n != 1 {
		t.Errorf("count after delete = %d, want 1", n)
	}
}

func TestRepository_CreateScene_defaults(t *testing.T) {
	repo := NewInMemoryRepository()
	sc := repo.CreateScene("")
	if sc.Name != DefaultSceneName {
		t.Errorf("default name = %q, want %q", sc.Name, DefaultSceneName)
	}
	if sc.ViewMode != ViewPerspective {
		t.Errorf("default view mode = %q, want %q", sc.ViewMode, ViewPerspective)
	}
	if sc.Elements.Total() != 0 {
		t.Errorf("new scene should be empty, has %d elements", sc.Elements.Total())
	}
}
