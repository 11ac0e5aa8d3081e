package mode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StartingPage is the first page of every listing.
const StartingPage uint8 = 1

// Kind identifies one of the lobste.rs listing endpoints.
type Kind uint8

const (
	Hottest Kind = iota
	Newest
	Active
)

// Kinds lists the listing variants in cycling order.
var Kinds = []Kind{Hottest, Newest, Active}

func (k Kind) String() string {
	switch k {
	case Hottest:
		return "Hottest"
	case Newest:
		return "Newest"
	case Active:
		return "Active"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) next() Kind {
	switch k {
	case Hottest:
		return Newest
	case Newest:
		return Active
	default:
		return Hottest
	}
}

func (k Kind) prev() Kind {
	switch k {
	case Newest:
		return Hottest
	case Hottest:
		return Active
	default:
		return Newest
	}
}

// Mode is a listing variant plus the 1-indexed page selected within it.
type Mode struct {
	Kind Kind
	Page uint8
}

func Default() Mode {
	return Mode{Kind: Hottest, Page: StartingPage}
}

func New(kind Kind, page uint8) Mode {
	if page < StartingPage {
		page = StartingPage
	}
	return Mode{Kind: kind, Page: page}
}

// NextPage advances one page. It reports false when the page is already at
// the numeric maximum.
func (m *Mode) NextPage() bool {
	if m.Page == math.MaxUint8 {
		return false
	}
	m.Page++
	return true
}

// PrevPage goes back one page. It reports false on the starting page.
func (m *Mode) PrevPage() bool {
	if m.Page <= StartingPage {
		return false
	}
	m.Page--
	return true
}

func (m *Mode) NextMode() {
	m.Kind = m.Kind.next()
	m.Page = StartingPage
}

func (m *Mode) PrevMode() {
	m.Kind = m.Kind.prev()
	m.Page = StartingPage
}

// PageIndex is the 0-indexed page, used as the page cache slot.
func (m Mode) PageIndex() int {
	return int(m.Page) - int(StartingPage)
}

// Path is the listing endpoint relative to the API base URL.
func (m Mode) Path() string {
	page := max(m.Page, StartingPage)
	switch m.Kind {
	case Newest:
		return fmt.Sprintf("/newest/page/%d.json", page)
	case Active:
		return fmt.Sprintf("/active/page/%d.json", page)
	default:
		return fmt.Sprintf("/page/%d.json", page)
	}
}

func (m Mode) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + m.Path()
}

// String is the display name of the variant. The page cache keys modes by it.
func (m Mode) String() string {
	return m.Kind.String()
}

// Parse reads a variant name, case-insensitively, at the starting page.
func Parse(s string) (Mode, error) {
	for _, k := range Kinds {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return New(k, StartingPage), nil
		}
	}
	return Mode{}, fmt.Errorf("unknown mode %q (want hottest, newest or active)", s)
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.Kind.String())), nil
}
