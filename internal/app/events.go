package app

import (
	"fmt"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/mode"
)

// Event is anything the core loop consumes from the merged queue.
type Event interface {
	event()
}

// ListingLoaded carries the result of a listing fetch.
type ListingLoaded struct {
	Mode  mode.Mode
	Posts []lobsters.Post
}

// DetailLoaded carries the comment thread of one post.
type DetailLoaded struct {
	Details lobsters.PostDetails
}

// KeyEvent is a keypress named the way bubbletea names keys ("j", "ctrl+c",
// "shift+tab", ...).
type KeyEvent struct {
	Key string
}

func (k KeyEvent) String() string { return k.Key }

type MouseKind uint8

const (
	MouseWheelUp MouseKind = iota + 1
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
	MouseMotion
	MouseLeft
	MouseRight
	MouseMiddle
)

// MouseEvent is a mouse action. Index is the post under the pointer, or -1
// when the pointer is outside the post list.
type MouseEvent struct {
	Kind  MouseKind
	Index int
}

type ResizeEvent struct {
	Width  int
	Height int
}

func (ListingLoaded) event() {}
func (DetailLoaded) event()  {}
func (KeyEvent) event()      {}
func (MouseEvent) event()    {}
func (ResizeEvent) event()   {}

type ActionKind uint8

const (
	MarkRead ActionKind = iota + 1
	MarkUnread
)

func (k ActionKind) String() string {
	switch k {
	case MarkRead:
		return "mark-read"
	case MarkUnread:
		return "mark-unread"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action is a read/unread change for the persistence worker.
type Action struct {
	Kind    ActionKind
	ShortID string
}
