package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/lobsters-cli/internal/app"
	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/mode"
	"github.com/glabrego/lobsters-cli/internal/tui/view"
)

func testModel(buffer int) (model, chan app.Event) {
	events := make(chan app.Event, buffer)
	m := newModel(view.DefaultUIOptions(), events, log.New(io.Discard))
	m.now = func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) }
	return m, events
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func threePosts() app.Snapshot {
	return app.Snapshot{
		Mode:     mode.Default(),
		Posts:    []lobsters.Post{{ShortID: "a", Title: "A"}, {ShortID: "b", Title: "B"}, {ShortID: "c", Title: "C"}},
		Selected: 0,
	}
}

func TestModel_ForwardsKeysAndResize(t *testing.T) {
	m, events := testModel(4)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, app.ResizeEvent{Width: 100, Height: 30}, <-events)
	assert.Equal(t, app.KeyEvent{Key: "j"}, <-events)
	assert.Equal(t, app.KeyEvent{Key: "ctrl+c"}, <-events)
}

func TestModel_DropsInputWhenQueueIsFull(t *testing.T) {
	m, events := testModel(1)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})

	assert.Len(t, events, 1)
	assert.Equal(t, app.KeyEvent{Key: "j"}, <-events)
}

func TestModel_TranslatesMouse(t *testing.T) {
	m, events := testModel(16)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	<-events
	m, _ = update(t, m, frameMsg{snapshot: threePosts()})

	cases := []struct {
		msg  tea.MouseMsg
		want app.MouseEvent
	}{
		{tea.MouseMsg{Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseWheelDown, Index: 1}},
		{tea.MouseMsg{Y: 1, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseWheelUp, Index: 0}},
		{tea.MouseMsg{Y: 5, Button: tea.MouseButtonWheelLeft, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseWheelLeft, Index: 2}},
		{tea.MouseMsg{Y: 5, Button: tea.MouseButtonWheelRight, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseWheelRight, Index: 2}},
		{tea.MouseMsg{Y: 4, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}, app.MouseEvent{Kind: app.MouseMotion, Index: 1}},
		{tea.MouseMsg{Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseLeft, Index: 0}},
		{tea.MouseMsg{Y: 6, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseRight, Index: 2}},
		{tea.MouseMsg{Y: 15, Button: tea.MouseButtonMiddle, Action: tea.MouseActionPress}, app.MouseEvent{Kind: app.MouseMiddle, Index: -1}},
	}
	for _, tc := range cases {
		m, _ = update(t, m, tc.msg)
		require.Len(t, events, 1, "no event for %+v", tc.msg)
		assert.Equal(t, tc.want, <-events)
	}

	_, _ = update(t, m, tea.MouseMsg{Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Empty(t, events)
}

func TestModel_SpinsOnlyWhileLoading(t *testing.T) {
	m, _ := testModel(1)

	s := threePosts()
	s.LoadingListing = true
	m, cmd := update(t, m, frameMsg{snapshot: s})
	require.NotNil(t, cmd)
	assert.True(t, m.spinning)

	m, cmd = update(t, m, frameMsg{snapshot: s})
	assert.Nil(t, cmd, "a second frame must not start another tick loop")

	s.LoadingListing = false
	m, _ = update(t, m, frameMsg{snapshot: s})
	m, cmd = update(t, m, spinner.TickMsg{ID: m.spinner.ID()})
	assert.Nil(t, cmd)
	assert.False(t, m.spinning)
}

func TestModel_ViewRendersSnapshot(t *testing.T) {
	m, _ := testModel(1)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m, _ = update(t, m, frameMsg{snapshot: threePosts()})

	out := m.View()
	assert.Len(t, strings.Split(out, "\n"), 12)
	assert.Contains(t, out, "lobste.rs")
}

func TestTerminal_PollTimesOut(t *testing.T) {
	term := &Terminal{events: make(chan app.Event, 1), done: make(chan struct{})}

	ev, ok, err := term.Poll(5 * time.Millisecond)
	assert.Nil(t, ev)
	assert.False(t, ok)
	assert.NoError(t, err)

	term.events <- app.KeyEvent{Key: "q"}
	ev, ok, err = term.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, app.KeyEvent{Key: "q"}, ev)

	close(term.done)
	_, _, err = term.Poll(time.Second)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, term.Draw(app.Snapshot{}), ErrClosed)
}

func TestTerminal_StartDrawClose(t *testing.T) {
	var out bytes.Buffer
	term := New(Options{UI: view.DefaultUIOptions(), Input: bytes.NewReader(nil), Output: &out, Inline: true})
	term.Start()

	require.NoError(t, term.Draw(threePosts()))

	closed := make(chan error, 1)
	go func() { closed <- term.Close() }()
	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}
