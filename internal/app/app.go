package app

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glabrego/lobsters-cli/internal/cache"
	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/mode"
)

const (
	// RowHeight is how many terminal lines one post occupies in the list.
	RowHeight = 2

	DefaultPollInterval = 50 * time.Millisecond

	requestBuffer = 64
	eventBuffer   = 256
)

// Terminal is the input source and frame sink driven by the core.
type Terminal interface {
	// Poll waits up to timeout for the next input event. ok is false when
	// nothing arrived in time.
	Poll(timeout time.Duration) (ev Event, ok bool, err error)
	Draw(Snapshot) error
}

// Opener hands URLs to the desktop.
type Opener interface {
	Open(url string) error
	Copy(text string) error
}

// Backend is the work behind the fetch and persistence workers.
type Backend interface {
	Listing(ctx context.Context, m mode.Mode) ([]lobsters.Post, error)
	Details(ctx context.Context, shortID string) (lobsters.PostDetails, error)
	Apply(ctx context.Context, action Action) error
}

// Flags is the state shared between the core and its workers. Every field is
// safe for concurrent use.
type Flags struct {
	Running        *atomic.Bool
	LoadingListing *atomic.Bool
	LoadingDetail  *atomic.Bool
	Downloaded     *atomic.Uint64
}

func NewFlags() Flags {
	return Flags{
		Running:        new(atomic.Bool),
		LoadingListing: new(atomic.Bool),
		LoadingDetail:  new(atomic.Bool),
		Downloaded:     new(atomic.Uint64),
	}
}

type Options struct {
	Mode                        mode.Mode
	OpeningCommentsMarksRead    bool
	PreviewingCommentsMarksRead bool
	PollInterval                time.Duration
}

type Dependencies struct {
	Backend  Backend
	Terminal Terminal
	Opener   Opener
	Logger   *log.Logger
}

// App is the application core. Only the goroutine running Run touches its
// fields; workers talk to it through channels and Flags.
type App struct {
	opts    Options
	flags   Flags
	keys    KeyMap
	backend Backend
	term    Terminal
	opener  Opener
	log     *log.Logger

	mode       mode.Mode
	cache      *cache.Pages[lobsters.Post]
	postSel    int
	commentSel int
	scroll     int
	showHelp   bool
	showDetail bool
	height     int
	status     string
	exitCode   int

	events      chan Event
	listingReqs *outbox[mode.Mode]
	detailReqs  *outbox[string]
	actions     *outbox[Action]
}

func New(opts Options, flags Flags, deps Dependencies) *App {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Mode.Page < mode.StartingPage {
		opts.Mode = mode.New(opts.Mode.Kind, mode.StartingPage)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		opts:        opts,
		flags:       flags,
		keys:        DefaultKeyMap(),
		backend:     deps.Backend,
		term:        deps.Terminal,
		opener:      deps.Opener,
		log:         logger.WithPrefix("core"),
		mode:        opts.Mode,
		cache:       cache.New[lobsters.Post](),
		events:      make(chan Event, eventBuffer),
		listingReqs: newOutbox[mode.Mode](requestBuffer),
		detailReqs:  newOutbox[string](requestBuffer),
		actions:     newOutbox[Action](requestBuffer),
	}
}

// Snapshot is a read-only copy of everything the renderer needs for one frame.
// Posts is copied; Tags and Comments are shared because neither is mutated
// after decoding.
type Snapshot struct {
	Mode            mode.Mode
	Posts           []lobsters.Post
	Selected        int
	CommentSelected int
	Scroll          int
	ShowHelp        bool
	ShowDetail      bool
	LoadingListing  bool
	LoadingDetail   bool
	Downloaded      uint64
	Status          string
}

// SelectedPost returns the highlighted post, if any.
func (s Snapshot) SelectedPost() (lobsters.Post, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Posts) {
		return lobsters.Post{}, false
	}
	return s.Posts[s.Selected], true
}

func (a *App) Snapshot() Snapshot {
	posts := make([]lobsters.Post, len(a.cache.Posts))
	copy(posts, a.cache.Posts)
	selected := a.postSel
	if len(posts) == 0 {
		selected = -1
	}
	return Snapshot{
		Mode:            a.mode,
		Posts:           posts,
		Selected:        selected,
		CommentSelected: a.commentSel,
		Scroll:          a.scroll,
		ShowHelp:        a.showHelp,
		ShowDetail:      a.showDetail,
		LoadingListing:  a.flags.LoadingListing.Load(),
		LoadingDetail:   a.flags.LoadingDetail.Load(),
		Downloaded:      a.flags.Downloaded.Load(),
		Status:          a.status,
	}
}

// ExitCode is 1 after a forced quit and 0 otherwise.
func (a *App) ExitCode() int {
	return a.exitCode
}
