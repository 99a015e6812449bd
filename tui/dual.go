package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/fieldvis/fieldvis/player"
	"github.com/fieldvis/fieldvis/render"
	"github.com/fieldvis/fieldvis/viewer"
)

// DualModel drives two synchronized viewers side by side plus the
// A minus B difference scene.
type DualModel struct {
	dual      *viewer.DualViewer
	rendererA Renderer
	rendererB Renderer
	palette   render.Palette
	delay     time.Duration
	speed     float64
	history   []float64
	width     int
	height    int
}

func NewDualModel(dual *viewer.DualViewer, rendererA, rendererB Renderer) *DualModel {
	return &DualModel{
		dual:      dual,
		rendererA: rendererA,
		rendererB: rendererB,
		palette:   render.Rainbow,
		delay:     baseDelay,
		speed:     1.0,
		history:   make([]float64, 0, historyLen),
		width:     80,
		height:    24,
	}
}

func (m *DualModel) SetBaseDelay(d time.Duration) {
	if d > 0 {
		m.delay = d
	}
}

func (m *DualModel) SetSpeed(v float64) {
	m.speed = math.Max(minSpeed, math.Min(maxSpeed, v))
}

func (m *DualModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.delay, m.speed)
}

func (m *DualModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.dual.Controller().State() == player.Playing {
			m.dual.Controller().Tick()
			m.refresh()
		}
		return m, tickCmd(m.delay, m.speed)
	}
	return m, nil
}

func (m *DualModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.dual.Controller()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		if ctrl.State() == player.Playing {
			ctrl.Pause()
		} else {
			ctrl.Play()
		}
	case "s":
		ctrl.Stop()
		m.history = m.history[:0]
		m.refresh()
	case "right":
		ctrl.Seek(ctrl.Frame() + 1)
		m.refresh()
	case "left":
		ctrl.Seek(ctrl.Frame() - 1)
		m.refresh()
	case "home":
		ctrl.Seek(0)
		m.refresh()
	case "end":
		ctrl.Seek(ctrl.FrameCount() - 1)
		m.refresh()
	case "l":
		ctrl.SetLoop(!ctrl.Loop())
	case "1":
		m.palette = render.Rainbow
		m.dual.SetPalette(render.Rainbow)
		m.refresh()
	case "2":
		m.palette = render.Abaqus
		m.dual.SetPalette(render.Abaqus)
		m.refresh()
	case "+", "=":
		m.speed = math.Min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = math.Max(m.speed/2, minSpeed)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

func (m *DualModel) refresh() {
	scA, scB := m.dual.Scenes()
	if m.rendererA != nil {
		m.rendererA.Render(scA)
	}
	if m.rendererB != nil {
		m.rendererB.Render(scB)
	}
	diff := m.dual.DiffScene()
	m.history = append(m.history, frameMean(diff.Scalars))
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *DualModel) View() string {
	var b strings.Builder

	ctrl := m.dual.Controller()
	icon, text := stateBadge(ctrl.State())
	b.WriteString(fmt.Sprintf("\n   %s %s  %s", icon, cyan.Render("A | B"), text))
	if ctrl.Loop() {
		b.WriteString("  " + dim.Render("loop"))
	}
	b.WriteString(fmt.Sprintf("  %s\n", dim.Render(fmt.Sprintf("%gx", m.speed))))

	scA, scB := m.dual.Scenes()
	b.WriteString(progressLine(ctrl.Frame(), ctrl.FrameCount(), scA.FrameLabel))

	diff := m.dual.DiffScene()
	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s\n",
		dim.Render("A"), white.Render(fmt.Sprintf("[%.4g, %.4g]", scA.Range.Min, scA.Range.Max)),
		dim.Render("B"), white.Render(fmt.Sprintf("[%.4g, %.4g]", scB.Range.Min, scB.Range.Max)),
		dim.Render("A−B"), white.Render(fmt.Sprintf("[%.4g, %.4g]", diff.Range.Min, diff.Range.Max))))

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(progressCols+20),
			asciigraph.Caption("mean difference"),
		)
		b.WriteString("\n" + indent(graph, "   ") + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play/pause  s stop  ←→ step  home/end  l loop  1/2 palette  +- speed  q quit") + "\n")
	return b.String()
}

// RunDual starts the dual terminal UI and blocks until the user quits.
func RunDual(m *DualModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
