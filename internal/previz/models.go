package previz

// Kind identifies a category of placeable element. Kind values double as the
// `elements` keys of the exported document format and as URL path segments.
type Kind string

const (
	KindCamera      Kind = "cameras"
	KindLight       Kind = "lights"
	KindActor       Kind = "actors"
	KindSetPiece    Kind = "setPieces"
	KindVehicle     Kind = "vehicles"
	KindScreen      Kind = "screens"
	KindGreenScreen Kind = "greenScreens"
)

// KindOrder is the canonical kind ordering used by projection and reports.
var KindOrder = []Kind{
	KindCamera, KindLight, KindActor,
	KindSetPiece, KindVehicle, KindScreen, KindGreenScreen,
}

// ParseKind maps a kind path segment to a Kind. ok is false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	switch k {
	case KindCamera, KindLight, KindActor, KindSetPiece,
		KindVehicle, KindScreen, KindGreenScreen:
		return k, true
	}
	return "", false
}

// ViewMode selects how a scene is projected into renderable geometry.
type ViewMode string

const (
	ViewFloorPlan   ViewMode = "FloorPlan"
	ViewPerspective ViewMode = "Perspective"
	ViewSideView    ViewMode = "SideView"
)

// ParseViewMode maps a view mode name to a ViewMode. ok is false for unknown names.
func ParseViewMode(s string) (ViewMode, bool) {
	m := ViewMode(s)
	switch m {
	case ViewFloorPlan, ViewPerspective, ViewSideView:
		return m, true
	}
	return "", false
}

// LightType classifies a light fixture. The beam-length divisor and the
// marker color depend on it.
type LightType string

const (
	LightKey       LightType = "Key"
	LightFill      LightType = "Fill"
	LightBack      LightType = "Back"
	LightLEDPanel  LightType = "LEDPanel"
	LightPractical LightType = "Practical"
	LightNatural   LightType = "Natural"
)

// SetPieceType classifies a set piece.
type SetPieceType string

const (
	SetPieceTable  SetPieceType = "Table"
	SetPieceChair  SetPieceType = "Chair"
	SetPieceSofa   SetPieceType = "Sofa"
	SetPieceDesk   SetPieceType = "Desk"
	SetPieceWall   SetPieceType = "Wall"
	SetPieceDoor   SetPieceType = "Door"
	SetPieceWindow SetPieceType = "Window"
)

// VehicleType classifies a vehicle.
type VehicleType string

const (
	VehicleCar        VehicleType = "Car"
	VehicleVan        VehicleType = "Van"
	VehicleTruck      VehicleType = "Truck"
	VehicleMotorcycle VehicleType = "Motorcycle"
	VehicleBicycle    VehicleType = "Bicycle"
)

// SizeLabel is the size class of a screen or green screen.
type SizeLabel string

const (
	SizeSmall  SizeLabel = "Small"
	SizeMedium SizeLabel = "Medium"
	SizeLarge  SizeLabel = "Large"
)

// Element is the closed set of placeable element kinds. The unexported method
// seals the set to this package; element ids are positional within a kind's
// sequence and are NOT stable across a deletion in the same kind.
type Element interface {
	Kind() Kind
	ElementName() string

	// duplicated returns a deep copy translated by (dx, dy) with the given name.
	duplicated(dx, dy float64, name string) Element
}

// Camera is a placed camera. FOV is not stored; it is derived from FocalLength
// via the catalog lookup table.
type Camera struct {
	Name        string  `json:"name" yaml:"name"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Z           float64 `json:"z" yaml:"z"`
	Rotation    float64 `json:"rotation" yaml:"rotation"`
	FocalLength int     `json:"focalLength" yaml:"focalLength"`
}

func (c Camera) Kind() Kind          { return KindCamera }
func (c Camera) ElementName() string { return c.Name }
func (c Camera) duplicated(dx, dy float64, name string) Element {
	c.X += dx
	c.Y += dy
	c.Name = name
	return c
}

// Light is a placed light fixture.
type Light struct {
	Name      string    `json:"name" yaml:"name"`
	Type      LightType `json:"type" yaml:"type"`
	X         float64   `json:"x" yaml:"x"`
	Y         float64   `json:"y" yaml:"y"`
	Z         float64   `json:"z" yaml:"z"`
	Rotation  float64   `json:"rotation" yaml:"rotation"`
	Intensity float64   `json:"intensity" yaml:"intensity"`
}

func (l Light) Kind() Kind          { return KindLight }
func (l Light) ElementName() string { return l.Name }
func (l Light) duplicated(dx, dy float64, name string) Element {
	l.X += dx
	l.Y += dy
	l.Name = name
	return l
}

// MoveTarget is the destination of an actor's blocking move.
type MoveTarget struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Actor is a placed actor. Actors stand on the floor (no height). A non-nil
// MoveTo means a movement indicator must render.
type Actor struct {
	Name   string      `json:"name" yaml:"name"`
	X      float64     `json:"x" yaml:"x"`
	Y      float64     `json:"y" yaml:"y"`
	Notes  string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	MoveTo *MoveTarget `json:"moveTo,omitempty" yaml:"moveTo,omitempty"`
}

func (a Actor) Kind() Kind          { return KindActor }
func (a Actor) ElementName() string { return a.Name }
func (a Actor) duplicated(dx, dy float64, name string) Element {
	a.X += dx
	a.Y += dy
	a.Name = name
	if a.MoveTo != nil {
		mt := *a.MoveTo
		a.MoveTo = &mt
	}
	return a
}

// SetPiece is a placed set piece. Set pieces sit on the floor.
type SetPiece struct {
	Name string       `json:"name" yaml:"name"`
	Type SetPieceType `json:"type" yaml:"type"`
	X    float64      `json:"x" yaml:"x"`
	Y    float64      `json:"y" yaml:"y"`
}

func (p SetPiece) Kind() Kind          { return KindSetPiece }
func (p SetPiece) ElementName() string { return p.Name }
func (p SetPiece) duplicated(dx, dy float64, name string) Element {
	p.X += dx
	p.Y += dy
	p.Name = name
	return p
}

// Vehicle is a placed vehicle. Vehicles sit on the floor but are oriented.
type Vehicle struct {
	Name     string      `json:"name" yaml:"name"`
	Type     VehicleType `json:"type" yaml:"type"`
	X        float64     `json:"x" yaml:"x"`
	Y        float64     `json:"y" yaml:"y"`
	Rotation float64     `json:"rotation" yaml:"rotation"`
}

func (v Vehicle) Kind() Kind          { return KindVehicle }
func (v Vehicle) ElementName() string { return v.Name }
func (v Vehicle) duplicated(dx, dy float64, name string) Element {
	v.X += dx
	v.Y += dy
	v.Name = name
	return v
}

// Screen is a placed playback or reference screen.
type Screen struct {
	Name string    `json:"name" yaml:"name"`
	Size SizeLabel `json:"size" yaml:"size"`
	X    float64   `json:"x" yaml:"x"`
	Y    float64   `json:"y" yaml:"y"`
	Z    float64   `json:"z" yaml:"z"`
}

func (s Screen) Kind() Kind          { return KindScreen }
func (s Screen) ElementName() string { return s.Name }
func (s Screen) duplicated(dx, dy float64, name string) Element {
	s.X += dx
	s.Y += dy
	s.Name = name
	return s
}

// GreenScreen is a placed green screen, rendered as an oriented wall segment
// rather than a point marker.
type GreenScreen struct {
	Name     string    `json:"name" yaml:"name"`
	Size     SizeLabel `json:"size" yaml:"size"`
	X        float64   `json:"x" yaml:"x"`
	Y        float64   `json:"y" yaml:"y"`
	Rotation float64   `json:"rotation" yaml:"rotation"`
}

func (g GreenScreen) Kind() Kind          { return KindGreenScreen }
func (g GreenScreen) ElementName() string { return g.Name }
func (g GreenScreen) duplicated(dx, dy float64, name string) Element {
	g.X += dx
	g.Y += dy
	g.Name = name
	return g
}

// SceneElements holds every placed element, one ordered sequence per kind.
// Field tags spell the document format's kind names.
type SceneElements struct {
	Cameras      []Camera      `json:"cameras" yaml:"cameras"`
	Lights       []Light       `json:"lights" yaml:"lights"`
	Actors       []Actor       `json:"actors" yaml:"actors"`
	SetPieces    []SetPiece    `json:"setPieces" yaml:"setPieces"`
	Vehicles     []Vehicle     `json:"vehicles" yaml:"vehicles"`
	Screens      []Screen      `json:"screens" yaml:"screens"`
	GreenScreens []GreenScreen `json:"greenScreens" yaml:"greenScreens"`
}

// Count returns the number of elements of the given kind.
func (e *SceneElements) Count(kind Kind) int {
	switch kind {
	case KindCamera:
		return len(e.Cameras)
	case KindLight:
		return len(e.Lights)
	case KindActor:
		return len(e.Actors)
	case KindSetPiece:
		return len(e.SetPieces)
	case KindVehicle:
		return len(e.Vehicles)
	case KindScreen:
		return len(e.Screens)
	case KindGreenScreen:
		return len(e.GreenScreens)
	}
	return 0
}

// Total returns the number of elements across all kinds.
func (e *SceneElements) Total() int {
	n := 0
	for _, k := range KindOrder {
		n += e.Count(k)
	}
	return n
}

// Get returns the element of the given kind at the positional id.
func (e *SceneElements) Get(kind Kind, id int) (Element, bool) {
	if id < 0 || id >= e.Count(kind) {
		return nil, false
	}
	switch kind {
	case KindCamera:
		return e.Cameras[id], true
	case KindLight:
		return e.Lights[id], true
	case KindActor:
		return e.Actors[id], true
	case KindSetPiece:
		return e.SetPieces[id], true
	case KindVehicle:
		return e.Vehicles[id], true
	case KindScreen:
		return e.Screens[id], true
	case KindGreenScreen:
		return e.GreenScreens[id], true
	}
	return nil, false
}

// Sequence returns the kind's elements as an ordered Element slice copy.
func (e *SceneElements) Sequence(kind Kind) []Element {
	n := e.Count(kind)
	out := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		el, _ := e.Get(kind, i)
		out = append(out, el)
	}
	return out
}

// appendElement appends el to its kind's sequence and returns the new id.
func (e *SceneElements) appendElement(el Element) int {
	switch v := el.(type) {
	case Camera:
		e.Cameras = append(e.Cameras, v)
		return len(e.Cameras) - 1
	case Light:
		e.Lights = append(e.Lights, v)
		return len(e.Lights) - 1
	case Actor:
		e.Actors = append(e.Actors, v)
		return len(e.Actors) - 1
	case SetPiece:
		e.SetPieces = append(e.SetPieces, v)
		return len(e.SetPieces) - 1
	case Vehicle:
		e.Vehicles = append(e.Vehicles, v)
		return len(e.Vehicles) - 1
	case Screen:
		e.Screens = append(e.Screens, v)
		return len(e.Screens) - 1
	case GreenScreen:
		e.GreenScreens = append(e.GreenScreens, v)
		return len(e.GreenScreens) - 1
	}
	return -1
}

// replace overwrites the element at id in place. Ordering is preserved.
func (e *SceneElements) replace(kind Kind, id int, el Element) bool {
	if id < 0 || id >= e.Count(kind) {
		return false
	}
	switch v := el.(type) {
	case Camera:
		e.Cameras[id] = v
	case Light:
		e.Lights[id] = v
	case Actor:
		e.Actors[id] = v
	case SetPiece:
		e.SetPieces[id] = v
	case Vehicle:
		e.Vehicles[id] = v
	case Screen:
		e.Screens[id] = v
	case GreenScreen:
		e.GreenScreens[id] = v
	default:
		return false
	}
	return true
}

// removeAt deletes the element at id, shifting subsequent ids down by one.
func (e *SceneElements) removeAt(kind Kind, id int) bool {
	if id < 0 || id >= e.Count(kind) {
		return false
	}
	switch kind {
	case KindCamera:
		e.Cameras = removeIndex(e.Cameras, id)
	case KindLight:
		e.Lights = removeIndex(e.Lights, id)
	case KindActor:
		e.Actors = removeIndex(e.Actors, id)
	case KindSetPiece:
		e.SetPieces = removeIndex(e.SetPieces, id)
	case KindVehicle:
		e.Vehicles = removeIndex(e.Vehicles, id)
	case KindScreen:
		e.Screens = removeIndex(e.Screens, id)
	case KindGreenScreen:
		e.GreenScreens = removeIndex(e.GreenScreens, id)
	}
	return true
}

func removeIndex[T any](s []T, i int) []T {
	return append(s[:i:i], s[i+1:]...)
}

// clone returns a deep copy, including actor MoveTo pointers.
func (e *SceneElements) clone() SceneElements {
	out := SceneElements{
		Cameras:      append([]Camera(nil), e.Cameras...),
		Lights:       append([]Light(nil), e.Lights...),
		Actors:       append([]Actor(nil), e.Actors...),
		SetPieces:    append([]SetPiece(nil), e.SetPieces...),
		Vehicles:     append([]Vehicle(nil), e.Vehicles...),
		Screens:      append([]Screen(nil), e.Screens...),
		GreenScreens: append([]GreenScreen(nil), e.GreenScreens...),
	}
	for i, a := range out.Actors {
		if a.MoveTo != nil {
			mt := *a.MoveTo
			out.Actors[i].MoveTo = &mt
		}
	}
	return out
}

// SceneID identifies an editing session hosted by the store.
type SceneID string

// Scene is the complete state of one editing session: metadata plus the
// per-kind element sequences. Elements never outlive the Scene.
type Scene struct {
	ID       SceneID       `json:"sceneId"`
	Name     string        `json:"name"`
	Elements SceneElements `json:"elements"`
	ViewMode ViewMode      `json:"viewMode"`
}

// snapshot returns a deep copy safe to hand outside the repository lock.
func (s *Scene) snapshot() Scene {
	return Scene{
		ID:       s.ID,
		Name:     s.Name,
		Elements: s.Elements.clone(),
		ViewMode: s.ViewMode,
	}
}
