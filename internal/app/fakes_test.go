package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/mode"
)

type fakeTerminal struct {
	input chan Event

	mu     sync.Mutex
	frames []Snapshot
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{input: make(chan Event, 32)}
}

func (f *fakeTerminal) Poll(timeout time.Duration) (Event, bool, error) {
	select {
	case ev := <-f.input:
		return ev, true, nil
	case <-time.After(timeout):
		return nil, false, nil
	}
}

func (f *fakeTerminal) Draw(s Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, s)
	return nil
}

func (f *fakeTerminal) lastFrame() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return Snapshot{}
	}
	return f.frames[len(f.frames)-1]
}

type fakeBackend struct {
	mu        sync.Mutex
	listings  map[mode.Mode][]lobsters.Post
	details   map[string][]lobsters.Comment
	listErr   error
	listDelay time.Duration
	requested []mode.Mode
	applied   []Action
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listings: make(map[mode.Mode][]lobsters.Post),
		details:  make(map[string][]lobsters.Comment),
	}
}

func (f *fakeBackend) Listing(_ context.Context, m mode.Mode) ([]lobsters.Post, error) {
	f.mu.Lock()
	delay := f.listDelay
	f.mu.Unlock()
	time.Sleep(delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, m)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]lobsters.Post(nil), f.listings[m]...), nil
}

func (f *fakeBackend) Details(_ context.Context, shortID string) (lobsters.PostDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lobsters.PostDetails{ShortID: shortID, Comments: f.details[shortID]}, nil
}

func (f *fakeBackend) Apply(_ context.Context, action Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, action)
	return nil
}

func (f *fakeBackend) appliedActions() []Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Action(nil), f.applied...)
}

type fakeOpener struct {
	opened []string
	copied []string
	err    error
}

func (f *fakeOpener) Open(url string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, url)
	return nil
}

func (f *fakeOpener) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

var errOpener = errors.New("no browser")

func makePosts(prefix string, n int) []lobsters.Post {
	posts := make([]lobsters.Post, n)
	for i := range posts {
		id := fmt.Sprintf("%s%d", prefix, i)
		posts[i] = lobsters.Post{
			ShortID:     id,
			Title:       "Post " + id,
			URL:         "https://example.com/" + id,
			CommentsURL: "https://lobste.rs/s/" + id,
			CreatedAt:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		}
	}
	return posts
}

type testApp struct {
	*App
	term    *fakeTerminal
	backend *fakeBackend
	opener  *fakeOpener
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	term := newFakeTerminal()
	backend := newFakeBackend()
	opener := &fakeOpener{}
	a := New(Options{
		Mode:                        mode.Default(),
		OpeningCommentsMarksRead:    true,
		PreviewingCommentsMarksRead: true,
		PollInterval:                5 * time.Millisecond,
	}, NewFlags(), Dependencies{Backend: backend, Terminal: term, Opener: opener})
	return testApp{App: a, term: term, backend: backend, opener: opener}
}

// loaded puts posts on screen as if a listing for the current mode arrived.
func (ta testApp) loaded(posts []lobsters.Post) {
	ta.handle(ListingLoaded{Mode: ta.mode, Posts: posts})
}

func (ta testApp) press(keys ...string) {
	for _, k := range keys {
		ta.handle(KeyEvent{Key: k})
	}
}

// drain empties an outbox as the worker would see it: queued requests
// first, then the ones still waiting for room.
func drain[T any](o *outbox[T]) []T {
	var out []T
	for {
		select {
		case v := <-o.ch:
			out = append(out, v)
		default:
			return append(out, o.take()...)
		}
	}
}

func drainListing(a *App) []mode.Mode { return drain(a.listingReqs) }

func drainDetails(a *App) []string { return drain(a.detailReqs) }

func drainActions(a *App) []Action { return drain(a.actions) }
