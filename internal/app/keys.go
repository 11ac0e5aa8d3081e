package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ShortcutKeys open the post at the matching position of the list. They
// skip every letter bound to a command.
const ShortcutKeys = "123456789abdefimnopstvwxyz;:$&*/|\\^`'\"[]()<>"

// Shortcut returns the shortcut key of the post at index i.
func Shortcut(i int) (string, bool) {
	if i < 0 || i >= len(ShortcutKeys) {
		return "", false
	}
	return ShortcutKeys[i : i+1], true
}

func shortcutIndex(k string) int {
	if len(k) != 1 {
		return -1
	}
	return strings.IndexByte(ShortcutKeys, k[0])
}

type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Close     key.Binding
	Help      key.Binding
	Details   key.Binding
	Open      key.Binding
	Comments  key.Binding
	Read      key.Binding
	Unread    key.Binding
	Copy      key.Binding
	Refresh   key.Binding
	Down      key.Binding
	Up        key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	First     key.Binding
	Last      key.Binding
	NextMode  key.Binding
	PrevMode  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close popups")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle keybinds")),
		Details:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "toggle post details")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open post / comment")),
		Comments:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open comments")),
		Read:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark read")),
		Unread:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "mark unread")),
		Copy:      key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy link")),
		Refresh:   key.NewBinding(key.WithKeys("R", "f5"), key.WithHelp("R/F5", "refresh")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next row")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous row")),
		PrevPage:  key.NewBinding(key.WithKeys("h", "left", "pgup"), key.WithHelp("h/←/PgUp", "previous page")),
		NextPage:  key.NewBinding(key.WithKeys("l", "right", "pgdown"), key.WithHelp("l/→/PgDn", "next page")),
		First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/Home", "first row")),
		Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G/End", "last row")),
		NextMode:  key.NewBinding(key.WithKeys("H", "tab"), key.WithHelp("H/Tab", "next mode")),
		PrevMode:  key.NewBinding(key.WithKeys("L", "shift+tab"), key.WithHelp("L/S-Tab", "previous mode")),
	}
}

// Bindings lists every binding in the order the help popup shows them.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.PrevPage, k.NextPage, k.First, k.Last,
		k.NextMode, k.PrevMode,
		k.Open, k.Comments, k.Details, k.Read, k.Unread, k.Copy, k.Refresh,
		k.Help, k.Close, k.Quit, k.ForceQuit,
	}
}

// Hints is the short list shown in the footer.
func (k KeyMap) Hints() []key.Binding {
	return []key.Binding{k.Down, k.NextPage, k.NextMode, k.Open, k.Details, k.Help, k.Quit}
}
