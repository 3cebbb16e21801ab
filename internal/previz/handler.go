package previz

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"previz-server/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const reportContentType = "text/plain; charset=utf-8"

// Handler exposes the scene editing API over HTTP using go-chi. It is the
// boundary where domain errors become status codes and where request logging
// happens; the core below it never logs.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler over the given Service, Logger, and optional
// Metrics. Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes: validation failures
// are 422, missing scenes/elements/templates are 404, malformed documents and
// undecodable payloads are 400.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		templateErr   *UnknownTemplateError
		documentErr   *MalformedDocumentError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ErrSceneNotFound), errors.As(err, &notFoundErr), errors.As(err, &templateErr):
		status = http.StatusNotFound
	case errors.As(err, &documentErr):
		status = http.StatusBadRequest
	default:
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
			status = http.StatusBadRequest
		}
	}

	if status == http.StatusInternalServerError {
		h.log.Error("request failed", slog.String("error", err.Error()))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) incMutations() {
	if h.metrics != nil {
		h.metrics.IncMutations()
	}
}

// sceneID pulls the scene id path parameter.
func sceneID(r *http.Request) SceneID {
	return SceneID(chi.URLParam(r, "scene_id"))
}

// kindParam pulls and checks the kind path parameter.
func kindParam(r *http.Request) (Kind, bool) {
	return ParseKind(chi.URLParam(r, "kind"))
}

// elementID pulls and parses the element id path parameter.
func elementID(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "element_id"))
	return n, err == nil
}

// CreateScene handles POST /scenes. Body: { "name": "Opening Shot" }.
func (h *Handler) CreateScene(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writeError(w, err)
			return
		}
	}

	sc := h.svc.CreateScene(body.Name)
	h.log.Info("scene created",
		slog.String("scene_id", string(sc.ID)),
		slog.String("name", sc.Name))
	h.writeJSON(w, http.StatusCreated, sc)
}

// GetScene handles GET /scenes/{scene_id}.
func (h *Handler) GetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := h.svc.Scene(sceneID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sc)
}

// DeleteScene handles DELETE /scenes/{scene_id}.
func (h *Handler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	id := sceneID(r)
	if err := h.svc.DeleteScene(id); err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("scene deleted", slog.String("scene_id", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

// RenameScene handles PUT /scenes/{scene_id}/name. Body: { "name": "..." }.
func (h *Handler) RenameScene(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.RenameScene(sceneID(r), body.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SetViewMode handles PUT /scenes/{scene_id}/view. Body: { "viewMode": "FloorPlan" }.
func (h *Handler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ViewMode string `json:"viewMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.SetViewMode(sceneID(r), ViewMode(body.ViewMode)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// AddElement handles POST /scenes/{scene_id}/elements/{kind}.
func (h *Handler) AddElement(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id, err := h.svc.AddElement(sceneID(r), kind, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Debug("element added",
		slog.String("scene_id", string(sceneID(r))),
		slog.String("kind", string(kind)),
		slog.Int("id", id))
	h.incMutations()
	h.writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// UpdateElement handles PUT /scenes/{scene_id}/elements/{kind}/{element_id}.
func (h *Handler) UpdateElement(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	elemID, ok := elementID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateElement(sceneID(r), kind, elemID, payload); err != nil {
		h.writeError(w, err)
		return
	}
	h.incMutations()
	w.WriteHeader(http.StatusOK)
}

// RemoveElement handles DELETE /scenes/{scene_id}/elements/{kind}/{element_id}.
// Element ids after the removed slot shift down by one.
func (h *Handler) RemoveElement(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	elemID, ok := elementID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveElement(sceneID(r), kind, elemID); err != nil {
		h.writeError(w, err)
		return
	}
	h.incMutations()
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateElement handles POST /scenes/{scene_id}/elements/{kind}/{element_id}/duplicate.
func (h *Handler) DuplicateElement(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	elemID, ok := elementID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id, el, err := h.svc.DuplicateElement(sceneID(r), kind, elemID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.incMutations()
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":   id,
		"name": el.ElementName(),
	})
}

// ApplyTemplate handles POST /scenes/{scene_id}/template. Body: { "template": "Three-Point Lighting" }.
func (h *Handler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.svc.ApplyTemplate(sceneID(r), body.Template); err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("template applied",
		slog.String("scene_id", string(sceneID(r))),
		slog.String("template", body.Template))
	h.incMutations()
	w.WriteHeader(http.StatusOK)
}

// ClearScene handles POST /scenes/{scene_id}/clear.
func (h *Handler) ClearScene(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearScene(sceneID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	h.incMutations()
	w.WriteHeader(http.StatusOK)
}

// ListTemplates handles GET /templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{"templates": h.svc.TemplateNames()})
}

// RenderScene handles GET /scenes/{scene_id}/render?view=FloorPlan. Without a
// view parameter the scene's stored view mode is used.
func (h *Handler) RenderScene(w http.ResponseWriter, r *http.Request) {
	model, err := h.svc.Render(sceneID(r), ViewMode(r.URL.Query().Get("view")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model)
}

// ExportScene handles GET /scenes/{scene_id}/export.
func (h *Handler) ExportScene(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(sceneID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncExports()
	}
	h.writeJSON(w, http.StatusOK, doc)
}

// ImportScene handles POST /scenes/{scene_id}/import. A malformed document
// leaves the scene untouched and yields 400.
func (h *Handler) ImportScene(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.Import(sceneID(r), payload); err != nil {
		h.log.Info("import rejected",
			slog.String("scene_id", string(sceneID(r))),
			slog.String("error", err.Error()))
		h.writeError(w, err)
		return
	}
	h.incMutations()
	w.WriteHeader(http.StatusOK)
}

// Report handles GET /scenes/{scene_id}/report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(sceneID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", reportContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report))
}
