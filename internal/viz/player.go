package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/label"
	"github.com/san-kum/cpxplay/internal/playback"
	"github.com/san-kum/cpxplay/internal/timeline"
)

const (
	canvasWidth     = 40
	canvasHeight    = 18
	historyCapacity = 120
	minSpeed        = 0.125
	maxSpeed        = 16
)

type TickMsg time.Time

type Options struct {
	Title     string
	FPS       int
	Speed     float64
	Theme     string
	QuitOnEnd bool
	Log       zerolog.Logger
}

// board receives the scheduler's sink calls between redraws.
type board struct {
	rotation [3]float64
	color    colorscale.Color
	frame    frame.Frame
	have     bool
	temps    []float64
}

func (b *board) ApplyOrientationAndColor(rotation [3]float64, c colorscale.Color) {
	b.rotation = rotation
	b.color = c
}

func (b *board) RenderInfo(f frame.Frame) {
	if b.have && f.TimeRecorded == b.frame.TimeRecorded {
		b.frame = f
		return
	}
	b.frame = f
	b.have = true
	b.temps = append(b.temps, f.TemperatureF)
	if len(b.temps) > historyCapacity {
		b.temps = b.temps[1:]
	}
}

// Model hosts one playback session. The scheduler is ticked from TickMsg;
// the virtual clock only advances while not paused.
type Model struct {
	tl      *timeline.Timeline
	opts    Options
	sched   *playback.Scheduler
	board   *board
	canvas  *Canvas
	camera  *Camera
	wire    *Wireframe
	theme   Theme
	styles  styles
	clock   float64 // virtual ms
	last    time.Time
	paused  bool
	ticking bool
	help    bool
}

func NewModel(tl *timeline.Timeline, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if !(opts.Speed > 0) {
		opts.Speed = 1
	}
	theme := GetTheme(opts.Theme)
	m := Model{
		tl:      tl,
		opts:    opts,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		wire:    BoardWireframe(1, 32),
		theme:   theme,
		styles:  newStyles(theme),
		ticking: true,
	}
	m.newSession()
	return m
}

func (m *Model) newSession() {
	m.board = &board{temps: make([]float64, 0, historyCapacity)}
	m.sched = playback.NewScheduler(m.tl, m.board, m.board, playback.WithLogger(m.opts.Log))
	m.clock = 0
	m.last = time.Time{}
}

func (m Model) Scheduler() *playback.Scheduler { return m.sched }
func (m Model) Clock() float64                 { return m.clock }
func (m Model) Paused() bool                   { return m.paused }
func (m Model) Speed() float64                 { return m.opts.Speed }
func (m Model) ThemeName() string              { return m.theme.Name }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.sched.Start()
	return m.tick()
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.advance(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.sched.Stop()
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "r":
		m.sched.Stop()
		m.newSession()
		m.sched.Start()
		if !m.ticking {
			m.ticking = true
			return m, m.tick()
		}
	case "+", "=":
		m.opts.Speed = math.Min(maxSpeed, m.opts.Speed*2)
	case "-", "_":
		m.opts.Speed = math.Max(minSpeed, m.opts.Speed/2)
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "z":
		m.camera.ZoomIn()
	case "Z":
		m.camera.ZoomOut()
	case "?":
		m.help = !m.help
	}
	return m, nil
}

func (m Model) advance(now time.Time) (tea.Model, tea.Cmd) {
	m.sched.Start()
	if !m.last.IsZero() && !m.paused {
		m.clock += float64(now.Sub(m.last)) / float64(time.Millisecond) * m.opts.Speed
	}
	m.last = now

	if m.paused || m.sched.Tick(m.clock) {
		m.ticking = true
		return m, m.tick()
	}

	m.ticking = false
	if m.opts.QuitOnEnd {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	if !m.board.have {
		return
	}
	Render3D(m.canvas, m.wire.Rotated(m.board.rotation), m.camera)
}

func (m Model) status() string {
	switch {
	case m.sched.Phase() == playback.Finished:
		return m.styles.finished.Render("FINISHED")
	case m.paused:
		return m.styles.paused.Render("PAUSED")
	default:
		return m.styles.playing.Render(fmt.Sprintf("PLAYING x%g", m.opts.Speed))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	boardColor := colorscale.Hex(m.board.color)
	canvasView := m.styles.canvas.Render(swatch(boardColor, m.canvas.String()))

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(m.status() + "\n")

	progress := 0.0
	if d := m.tl.DurationMs(); d > 0 {
		progress = math.Min(1, m.clock/d)
	}
	s.WriteString(ProgressBar(progress, 30, m.styles.graph) +
		m.styles.muted.Render(fmt.Sprintf(" %.1fs/%.1fs", m.clock/1000, m.tl.DurationMs()/1000)) + "\n\n")

	if m.board.have {
		s.WriteString(m.renderLabel(m.board.frame))
	} else {
		s.WriteString(m.styles.muted.Render("waiting for first frame") + "\n")
	}

	if len(m.board.temps) > 1 {
		chart := asciigraph.Plot(m.board.temps, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Temperature (F)"))
		s.WriteString("\n" + m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.help.Render("SP:Pause R:Restart Q:Quit\n+/-:Speed T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
	if m.help {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) renderLabel(f frame.Frame) string {
	var s strings.Builder
	s.WriteString(m.styles.value.Bold(true).Render(label.Heading(f)) + "\n")
	for _, sec := range label.Sections(f) {
		title := m.styles.header.UnsetMarginBottom().Render(sec.Title)
		if sec.Color != "" {
			title = swatch(sec.Color, sec.Title)
		}
		s.WriteString(title + "\n")
		for _, ln := range sec.Lines {
			key := m.styles.key.Render(ln.Key)
			if ln.Color != "" {
				key = m.styles.key.Foreground(lipgloss.Color(ln.Color)).Render(ln.Key)
			}
			s.WriteString(key + m.styles.value.Render(ln.Value) + "\n")
		}
	}
	return s.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from the start   ║
║  +/-      - Double/halve speed       ║
║  z/Z      - Zoom in/out              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the Bubble Tea program on the alternate screen.
func Run(tl *timeline.Timeline, opts Options) error {
	p := tea.NewProgram(NewModel(tl, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
