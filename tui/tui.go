package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/fieldvis/fieldvis/player"
	"github.com/fieldvis/fieldvis/render"
	"github.com/fieldvis/fieldvis/viewer"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	baseDelay    = 100 * time.Millisecond
	minSpeed     = 0.25
	maxSpeed     = 4.0
	historyLen   = 60
	graphHeight  = 6
	progressCols = 36
)

// Renderer receives each frame's scene. The graphics window plugs in
// here; a nil renderer runs the terminal view alone.
type Renderer interface {
	Render(sc *render.SceneDescription)
}

// Model drives a single-viewer playback session from the terminal.
type Model struct {
	session  *viewer.Session
	renderer Renderer
	palette  render.Palette
	delay    time.Duration
	speed    float64
	history  []float64
	errMsg   string
	width    int
	height   int
}

func NewModel(session *viewer.Session, renderer Renderer) *Model {
	return &Model{
		session:  session,
		renderer: renderer,
		palette:  render.Rainbow,
		delay:    baseDelay,
		speed:    1.0,
		history:  make([]float64, 0, historyLen),
		width:    80,
		height:   24,
	}
}

// SetBaseDelay sets the frame interval at 1x speed
func (m *Model) SetBaseDelay(d time.Duration) {
	if d > 0 {
		m.delay = d
	}
}

// SetSpeed clamps into the supported multiplier window
func (m *Model) SetSpeed(v float64) {
	m.speed = math.Max(minSpeed, math.Min(maxSpeed, v))
}

type tickMsg time.Time

func tickCmd(delay time.Duration, speed float64) tea.Cmd {
	d := time.Duration(float64(delay) / speed)
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.delay, m.speed)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.session.Controller().State() == player.Playing {
			m.session.Tick()
			m.refresh()
		}
		return m, tickCmd(m.delay, m.speed)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.session.Controller()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		if ctrl.State() == player.Playing {
			m.session.Pause()
		} else {
			m.session.Play()
		}
	case "s":
		m.session.Stop()
		m.history = m.history[:0]
		m.refresh()
	case "right":
		m.session.Seek(ctrl.Frame() + 1)
		m.refresh()
	case "left":
		m.session.Seek(ctrl.Frame() - 1)
		m.refresh()
	case "home":
		m.session.Seek(0)
		m.refresh()
	case "end":
		m.session.Seek(m.session.FrameCount() - 1)
		m.refresh()
	case "l":
		m.session.SetLoop(!ctrl.Loop())
	case "1":
		m.setPalette(render.Rainbow)
	case "2":
		m.setPalette(render.Abaqus)
	case "+", "=":
		m.speed = math.Min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = math.Max(m.speed/2, minSpeed)
	case "0":
		m.speed = 1.0
	case "r":
		if err := m.session.ResetActiveRange(); err == nil {
			m.refresh()
		}
	case "tab":
		m.nextField()
	}
	return m, nil
}

func (m *Model) setPalette(p render.Palette) {
	m.palette = p
	m.session.SetPalette(p)
	m.refresh()
}

func (m *Model) nextField() {
	names := m.session.FieldNames()
	if len(names) < 2 {
		return
	}
	cur := m.session.CurrentField()
	for i, name := range names {
		if name == cur {
			next := names[(i+1)%len(names)]
			if err := m.session.SelectField(next); err != nil {
				m.errMsg = err.Error()
				return
			}
			m.history = m.history[:0]
			m.refresh()
			return
		}
	}
}

// refresh rebuilds the scene for the current frame, pushes it to the
// renderer and records the frame mean for the history graph.
func (m *Model) refresh() {
	sc, err := m.session.Scene()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	if m.renderer != nil {
		m.renderer.Render(sc)
	}
	m.history = append(m.history, frameMean(sc.Scalars))
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func frameMean(scalars []float64) float64 {
	var sum float64
	var n int
	for _, v := range scalars {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (m *Model) View() string {
	var b strings.Builder

	ctrl := m.session.Controller()
	icon, text := stateBadge(ctrl.State())
	b.WriteString(fmt.Sprintf("\n   %s %s  %s", icon, cyan.Render(m.session.CurrentField()), text))
	if ctrl.Loop() {
		b.WriteString("  " + dim.Render("loop"))
	}
	b.WriteString(fmt.Sprintf("  %s\n", dim.Render(fmt.Sprintf("%gx", m.speed))))

	b.WriteString(progressLine(ctrl.Frame(), m.session.FrameCount(), m.session.FrameLabel()))

	rng := m.session.ActiveRange()
	b.WriteString(fmt.Sprintf("   %s %s  %s %s\n",
		dim.Render("range"), white.Render(fmt.Sprintf("[%.4g, %.4g]", rng.Min, rng.Max)),
		dim.Render("palette"), white.Render(m.palette.String())))

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(progressCols+20),
			asciigraph.Caption("frame mean"),
		)
		b.WriteString("\n" + indent(graph, "   ") + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n   " + red.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play/pause  s stop  ←→ step  home/end  tab field  l loop  1/2 palette  +- speed  q quit") + "\n")
	return b.String()
}

func stateBadge(s player.State) (icon, text string) {
	switch s {
	case player.Playing:
		return green.Render("●"), green.Render("playing")
	case player.Paused:
		return yellow.Render("○"), yellow.Render("paused")
	default:
		return dimmer.Render("○"), dim.Render("stopped")
	}
}

func progressLine(frame, count int, label string) string {
	if count == 0 {
		return "   " + dimmer.Render(strings.Repeat("─", progressCols)) + "\n"
	}
	progress := float64(frame) / float64(count-1)
	if count == 1 {
		progress = 1
	}
	filled := int(progress * float64(progressCols))
	bar := cyan.Render(strings.Repeat("━", filled)) +
		dimmer.Render(strings.Repeat("─", progressCols-filled))
	pos := fmt.Sprintf("%d/%d", frame+1, count)
	return fmt.Sprintf("   %s %s  %s\n", bar, dim.Render(pos), white.Render(label))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Run starts the terminal UI and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
