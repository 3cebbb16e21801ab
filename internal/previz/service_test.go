package previz

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestService(t *testing.T) (*Service, SceneID) {
	t.Helper()
	svc := NewService(NewInMemoryRepository(), Stage{})
	sc := svc.CreateScene("Service Test")
	return svc, sc.ID
}

func TestService_AddElement_decodes_payload(t *testing.T) {
	svc, id := newTestService(t)

	payload := []byte(`{"name":"Main Camera","x":0,"y":-8,"z":5,"rotation":0,"focalLength":50}`)
	elemID, err := svc.AddElement(id, KindCamera, payload)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if elemID != 0 {
		t.Errorf("first id = %d, want 0", elemID)
	}

	sc, _ := svc.Scene(id)
	if sc.Elements.Cameras[0].FocalLength != 50 {
		t.Errorf("camera = %+v", sc.Elements.Cameras[0])
	}
}

func TestService_AddElement_validation_rejection(t *testing.T) {
	svc, id := newTestService(t)

	payload := []byte(`{"name":"Hot","type":"Key","intensity":150}`)
	_, err := svc.AddElement(id, KindLight, payload)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "intensity" {
		t.Errorf("field = %q, want intensity", vErr.Field)
	}

	sc, _ := svc.Scene(id)
	if len(sc.Elements.Lights) != 0 {
		t.Errorf("light count = %d, want 0", len(sc.Elements.Lights))
	}
}

func TestService_Render_uses_stored_view_mode(t *testing.T) {
	svc, id := newTestService(t)

	if err := svc.SetViewMode(id, ViewFloorPlan); err != nil {
		t.Fatalf("set view: %v", err)
	}
	m, err := svc.Render(id, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if m.ViewMode != ViewFloorPlan {
		t.Errorf("view mode = %q, want stored FloorPlan", m.ViewMode)
	}
}

func TestService_Render_rejects_unknown_view(t *testing.T) {
	svc, id := newTestService(t)

	_, err := svc.Render(id, ViewMode("Isometric"))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestService_export_import_round_trip(t *testing.T) {
	svc, id := newTestService(t)

	if err := svc.ApplyTemplate(id, TemplateThreePoint); err != nil {
		t.Fatalf("template: %v", err)
	}
	before, _ := svc.Scene(id)

	doc, err := svc.Export(id)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, _ := json.Marshal(doc)

	// Import into a fresh scene.
	other := svc.CreateScene("Other")
	if err := svc.Import(other.ID, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	after, _ := svc.Scene(other.ID)
	if after.Name != before.Name {
		t.Errorf("imported name %q, want %q", after.Name, before.Name)
	}
	if !reflect.DeepEqual(after.Elements, before.Elements) {
		t.Errorf("elements differ after round trip:\ngot  %+v\nwant %+v", after.Elements, before.Elements)
	}
}

func TestService_Import_failure_preserves_scene(t *testing.T) {
	svc, id := newTestService(t)

	if err := svc.ApplyTemplate(id, TemplateInterview); err != nil {
		t.Fatalf("template: %v", err)
	}
	before, _ := svc.Scene(id)

	bad := []byte(`{"sceneName":"Broken","elements":{"lights":[{"name":"L","type":"Key","intensity":400}]}}`)
	err := svc.Import(id, bad)
	var mErr *MalformedDocumentError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MalformedDocumentError, got %v", err)
	}

	after, _ := svc.Scene(id)
	if after.Name != before.Name || !reflect.DeepEqual(after.Elements, before.Elements) {
		t.Error("failed import must leave the scene untouched")
	}
}

func TestService_Report(t *testing.T) {
	svc, id := newTestService(t)
	if err := svc.ApplyTemplate(id, TemplateThreePoint); err != nil {
		t.Fatalf("template: %v", err)
	}

	report, err := svc.Report(id)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"CAMERAS (1)", "LIGHTING (3)", "TALENT (1)", "Key Light"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
