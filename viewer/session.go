package viewer

import (
	"fmt"
	"sort"

	"github.com/fieldvis/fieldvis/field"
	"github.com/fieldvis/fieldvis/mesh"
	"github.com/fieldvis/fieldvis/player"
	"github.com/fieldvis/fieldvis/readfiles"
	"github.com/fieldvis/fieldvis/render"
)

// ReconciliationWarning reports a partial node overlap between a mesh
// and a field series. Non-fatal: the matched subset still visualizes.
type ReconciliationWarning struct {
	Series  string
	Missing int
	Total   int
}

func (w ReconciliationWarning) String() string {
	return fmt.Sprintf("series %q: %d of %d mesh nodes have no field data",
		w.Series, w.Missing, w.Total)
}

// boundField is one loaded series reconciled against the current mesh
type boundField struct {
	series     *field.Series
	binding    *field.Binding
	rng        render.Range
	overridden bool // manual active range set, don't auto-reset
}

// Session is the host-facing facade: it owns the loaded mesh, the named
// field series library, the color map and the animation controller, and
// guarantees that reloads are atomic (old state survives failed loads,
// playback stops before anything is swapped).
type Session struct {
	mesh    *mesh.Mesh
	builder *render.SceneBuilder
	fields  map[string]*boundField
	current string
	cmap    *render.ColorMap
	ctrl    *player.Controller
	verbose bool
}

func NewSession(verbose bool) *Session {
	return &Session{
		fields:  make(map[string]*boundField),
		cmap:    render.NewColorMap(render.Rainbow),
		ctrl:    player.NewController(0),
		verbose: verbose,
	}
}

// LoadMesh replaces the current mesh. Playback stops first and every
// loaded series is discarded: bindings against the old mesh are not
// carried over, the caller re-loads field files for the new geometry.
// A failed parse leaves the previous state untouched.
func (s *Session) LoadMesh(path string) error {
	m, err := readfiles.ReadInpMesh(path, s.verbose)
	if err != nil {
		return err
	}
	s.ctrl.Stop()
	s.ctrl.Reset(0)
	s.mesh = m
	s.builder = render.NewSceneBuilder(m)
	s.fields = make(map[string]*boundField)
	s.current = ""
	return nil
}

// LoadFieldSeries loads a CSV series, binds it against the mesh and adds
// it to the field library under its name (file basename). The first
// loaded series becomes current. Returns a ReconciliationWarning when
// the node overlap is partial.
func (s *Session) LoadFieldSeries(path string) (*ReconciliationWarning, error) {
	if s.mesh == nil {
		return nil, fmt.Errorf("no mesh loaded")
	}
	series, err := readfiles.ReadFieldSeries(path, s.verbose)
	if err != nil {
		return nil, err
	}
	binding := field.Bind(s.mesh, series)
	min, max := series.GlobalRange()
	bf := &boundField{
		series:  series,
		binding: binding,
		rng:     render.Range{Min: min, Max: max},
	}
	s.fields[series.Name] = bf
	if s.current == "" || s.current == series.Name {
		if err := s.SelectField(series.Name); err != nil {
			return nil, err
		}
	}
	if binding.MissingCount() > 0 {
		return &ReconciliationWarning{
			Series:  series.Name,
			Missing: binding.MissingCount(),
			Total:   binding.NumNodes(),
		}, nil
	}
	return nil, nil
}

// SelectField switches the active series. Playback stops and the frame
// resets to 0 against the new series length.
func (s *Session) SelectField(name string) error {
	bf, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("no field series named %q loaded", name)
	}
	s.current = name
	s.ctrl.Reset(bf.series.FrameCount())
	return nil
}

func (s *Session) CurrentField() string { return s.current }

func (s *Session) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Session) active() *boundField {
	if s.current == "" {
		return nil
	}
	return s.fields[s.current]
}

// SetActiveRange overrides the color range for the current series
func (s *Session) SetActiveRange(min, max float64) error {
	bf := s.active()
	if bf == nil {
		return fmt.Errorf("no field series selected")
	}
	if max <= min {
		return fmt.Errorf("invalid range [%g, %g]: max must exceed min", min, max)
	}
	bf.rng = render.Range{Min: min, Max: max}
	bf.overridden = true
	return nil
}

// ResetActiveRange restores the series' global min/max
func (s *Session) ResetActiveRange() error {
	bf := s.active()
	if bf == nil {
		return fmt.Errorf("no field series selected")
	}
	min, max := bf.series.GlobalRange()
	bf.rng = render.Range{Min: min, Max: max}
	bf.overridden = false
	return nil
}

func (s *Session) ActiveRange() render.Range {
	if bf := s.active(); bf != nil {
		return bf.rng
	}
	return render.Range{}
}

func (s *Session) SetPalette(p render.Palette) {
	s.cmap = render.NewColorMap(p)
}

// Scene builds the frame scene for the controller's current frame
func (s *Session) Scene() (*render.SceneDescription, error) {
	bf := s.active()
	if bf == nil {
		return nil, fmt.Errorf("no field series selected")
	}
	return s.builder.BuildScene(bf.binding, s.cmap, bf.rng, s.ctrl.Frame()), nil
}

// Playback operations delegate to the controller

func (s *Session) Controller() *player.Controller     { return s.ctrl }
func (s *Session) Play()                              { s.ctrl.Play() }
func (s *Session) Pause()                             { s.ctrl.Pause() }
func (s *Session) Stop()                              { s.ctrl.Stop() }
func (s *Session) Tick()                              { s.ctrl.Tick() }
func (s *Session) Seek(frame int) int                 { return s.ctrl.Seek(frame) }
func (s *Session) SetLoop(loop bool)                  { s.ctrl.SetLoop(loop) }
func (s *Session) OnFrameChanged(fn player.FrameFunc) { s.ctrl.OnFrameChanged(fn) }

func (s *Session) Mesh() *mesh.Mesh { return s.mesh }

func (s *Session) FrameCount() int {
	if bf := s.active(); bf != nil {
		return bf.series.FrameCount()
	}
	return 0
}

// FrameLabel returns the source file's label for the current frame
func (s *Session) FrameLabel() string {
	bf := s.active()
	if bf == nil {
		return ""
	}
	return bf.series.Label(s.ctrl.Frame())
}
