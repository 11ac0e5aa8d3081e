// Package tui connects the application core to a bubbletea program. The
// program only forwards input and paints the latest snapshot; every state
// change happens in the core.
package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/lobsters-cli/internal/app"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
	"github.com/glabrego/lobsters-cli/internal/tui/view"
)

const inputBuffer = 128

// ErrClosed is returned once the terminal program has stopped.
var ErrClosed = errors.New("terminal closed")

type Options struct {
	UI view.UIOptions
	// Input and Output default to the process terminal when nil.
	Input  io.Reader
	Output io.Writer
	// Inline disables the alternate screen.
	Inline bool
	Logger *log.Logger
}

// Terminal implements app.Terminal on top of a tea.Program.
type Terminal struct {
	program *tea.Program
	events  chan app.Event
	done    chan struct{}
	runErr  error
}

type frameMsg struct {
	snapshot app.Snapshot
}

func New(opts Options) *Terminal {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	events := make(chan app.Event, inputBuffer)
	m := newModel(opts.UI, events, logger.WithPrefix("tui"))

	progOpts := []tea.ProgramOption{
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	}
	if !opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	return &Terminal{
		program: tea.NewProgram(m, progOpts...),
		events:  events,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background until Close or Kill.
func (t *Terminal) Start() {
	go func() {
		defer close(t.done)
		_, t.runErr = t.program.Run()
	}()
}

func (t *Terminal) Poll(timeout time.Duration) (app.Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-t.events:
		return ev, true, nil
	case <-t.done:
		if t.runErr != nil {
			return nil, false, t.runErr
		}
		return nil, false, ErrClosed
	case <-timer.C:
		return nil, false, nil
	}
}

func (t *Terminal) Draw(s app.Snapshot) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}
	t.program.Send(frameMsg{snapshot: s})
	return nil
}

// Close stops the program, restores the terminal and waits for it.
func (t *Terminal) Close() error {
	t.program.Quit()
	<-t.done
	if errors.Is(t.runErr, tea.ErrProgramKilled) {
		return nil
	}
	return t.runErr
}

// Kill restores the terminal without waiting for a final frame. It is meant
// for crash paths.
func (t *Terminal) Kill() {
	t.program.Kill()
	<-t.done
}

type model struct {
	snapshot app.Snapshot
	width    int
	height   int
	spinning bool

	ui      view.UIOptions
	keys    app.KeyMap
	theme   tuitheme.Theme
	spinner spinner.Model
	events  chan<- app.Event
	now     func() time.Time
	log     *log.Logger
}

func newModel(ui view.UIOptions, events chan<- app.Event, logger *log.Logger) model {
	return model{
		snapshot: app.Snapshot{Selected: -1},
		ui:       ui,
		keys:     app.DefaultKeyMap(),
		theme:    tuitheme.Default(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		events:   events,
		now:      time.Now,
		log:      logger,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.snapshot = msg.snapshot
		if loading(m.snapshot) && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil
	case spinner.TickMsg:
		if !loading(m.snapshot) {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.send(app.ResizeEvent{Width: msg.Width, Height: msg.Height})
		return m, nil
	case tea.KeyMsg:
		m.send(app.KeyEvent{Key: msg.String()})
		return m, nil
	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.send(ev)
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	spin := ""
	if loading(m.snapshot) {
		spin = m.spinner.View()
	}
	return view.Render(view.Input{
		Snapshot: m.snapshot,
		Width:    m.width,
		Height:   m.height,
		UI:       m.ui,
		Keys:     m.keys,
		Spinner:  spin,
		Now:      m.now(),
	}, m.theme)
}

// send never blocks the bubbletea event loop. Input that arrives while the
// core is saturated is dropped.
func (m model) send(ev app.Event) {
	select {
	case m.events <- ev:
	default:
		m.log.Warn("dropped input event", "event", ev)
	}
}

func (m model) mouseEvent(msg tea.MouseMsg) (app.MouseEvent, bool) {
	index := view.PostIndexAt(m.snapshot, m.height, m.ui, msg.Y)
	ev := app.MouseEvent{Index: index}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.Kind = app.MouseWheelUp
		return ev, true
	case tea.MouseButtonWheelDown:
		ev.Kind = app.MouseWheelDown
		return ev, true
	case tea.MouseButtonWheelLeft:
		ev.Kind = app.MouseWheelLeft
		return ev, true
	case tea.MouseButtonWheelRight:
		ev.Kind = app.MouseWheelRight
		return ev, true
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		ev.Kind = app.MouseMotion
		return ev, true
	case tea.MouseActionPress:
	default:
		return ev, false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Kind = app.MouseLeft
	case tea.MouseButtonRight:
		ev.Kind = app.MouseRight
	case tea.MouseButtonMiddle:
		ev.Kind = app.MouseMiddle
	default:
		return ev, false
	}
	return ev, true
}

func loading(s app.Snapshot) bool {
	return s.LoadingListing || s.LoadingDetail
}
