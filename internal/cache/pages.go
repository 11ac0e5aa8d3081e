// Package cache keeps fetched listings in memory for the lifetime of a
// session, per mode and per page.
package cache

import "fmt"

// Pages holds the working list plus every other page of the active mode, and
// the page sets of modes that were switched away from.
//
// The working list and the slot of the current page never both hold the
// current page's entries: LoadPage and StoreMode move lists between them
// rather than copying.
type Pages[T any] struct {
	Posts []T

	pages [][]T
	modes map[string][][]T
}

func New[T any]() *Pages[T] {
	return &Pages[T]{modes: make(map[string][][]T)}
}

// LoadPage parks the working list in slot prev and takes slot next as the new
// working list. It reports whether the new working list has entries; false
// means the page was never fetched.
func (c *Pages[T]) LoadPage(prev, next int) bool {
	if prev < 0 || next < 0 {
		panic(fmt.Sprintf("cache: negative page index (prev=%d, next=%d)", prev, next))
	}
	c.grow(max(prev, next))
	c.Posts, c.pages[prev] = c.pages[prev], c.Posts
	c.Posts, c.pages[next] = c.pages[next], c.Posts
	return len(c.Posts) > 0
}

// StoreMode parks the working list in slot page and moves the whole page set
// under key. The working list and page set are empty afterwards.
func (c *Pages[T]) StoreMode(key string, page int) {
	if page < 0 {
		panic(fmt.Sprintf("cache: negative page index %d", page))
	}
	c.grow(page)
	c.pages[page], c.Posts = c.Posts, nil
	if c.modes == nil {
		c.modes = make(map[string][][]T)
	}
	c.modes[key], c.pages = c.pages, nil
}

// LoadMode restores the page set stored under key and takes slot page as the
// working list. It reports false when nothing was stored under key or the
// restored page is empty.
func (c *Pages[T]) LoadMode(key string, page int) bool {
	if page < 0 {
		panic(fmt.Sprintf("cache: negative page index %d", page))
	}
	stored, ok := c.modes[key]
	if !ok {
		return false
	}
	delete(c.modes, key)
	c.pages = stored
	c.grow(page)
	c.Posts, c.pages[page] = c.pages[page], nil
	return len(c.Posts) > 0
}

// Page returns the cached entries of slot i without moving them. Missing
// slots read as empty.
func (c *Pages[T]) Page(i int) []T {
	if i < 0 || i >= len(c.pages) {
		return nil
	}
	return c.pages[i]
}

// Modes reports how many page sets are parked under a mode key.
func (c *Pages[T]) Modes() int {
	return len(c.modes)
}

func (c *Pages[T]) grow(i int) {
	for len(c.pages) <= i {
		c.pages = append(c.pages, nil)
	}
}
