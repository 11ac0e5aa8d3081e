package app

import (
	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/state"
)

// selected returns the highlighted post index; ok is false on an empty list.
func (a *App) selected() (int, bool) {
	if len(a.cache.Posts) == 0 {
		return 0, false
	}
	state.MustInBounds(a.postSel, len(a.cache.Posts))
	return a.postSel, true
}

func (a *App) post(i int) *lobsters.Post {
	state.MustInBounds(i, len(a.cache.Posts))
	return &a.cache.Posts[i]
}

// currentComments is the comment list shown by the detail popup.
func (a *App) currentComments() []lobsters.Comment {
	i, ok := a.selected()
	if !ok {
		return nil
	}
	return a.cache.Posts[i].Comments
}

func (a *App) selectPost(i int) {
	state.MustInBounds(i, len(a.cache.Posts))
	a.postSel = i
	a.scroll = i * RowHeight
}

func (a *App) firstRow() {
	if len(a.cache.Posts) == 0 {
		return
	}
	if a.showDetail {
		a.commentSel = 0
		return
	}
	a.selectPost(0)
}

func (a *App) lastRow() {
	if len(a.cache.Posts) == 0 {
		return
	}
	if a.showDetail {
		if n := len(a.currentComments()); n > 0 {
			a.commentSel = n - 1
		}
		return
	}
	a.postSel = len(a.cache.Posts) - 1
	a.scroll = len(a.cache.Posts) * RowHeight
}

func (a *App) nextRow() {
	if len(a.cache.Posts) == 0 {
		return
	}
	if a.showDetail {
		if n := len(a.currentComments()); n > 0 {
			a.commentSel = state.NextWrap(a.commentSel, n)
		}
		return
	}
	a.selectPost(state.NextWrap(a.postSel, len(a.cache.Posts)))
}

func (a *App) previousRow() {
	if len(a.cache.Posts) == 0 {
		return
	}
	if a.showDetail {
		if n := len(a.currentComments()); n > 0 {
			a.commentSel = state.PrevWrap(a.commentSel, n)
		}
		return
	}
	a.selectPost(state.PrevWrap(a.postSel, len(a.cache.Posts)))
}

// resetSelection points both cursors at the top of a freshly loaded list.
func (a *App) resetSelection() {
	if len(a.cache.Posts) == 0 {
		return
	}
	a.selectPost(0)
	a.commentSel = 0
}

func (a *App) nextPage() {
	// Nothing loaded yet, or the listing ran out of posts.
	if len(a.cache.Posts) == 0 {
		return
	}
	if !a.mode.NextPage() {
		return
	}
	page := a.mode.PageIndex()
	if !a.cache.LoadPage(page-1, page) {
		a.requestListing()
	}
	a.firstRow()
}

func (a *App) previousPage() {
	if !a.mode.PrevPage() {
		return
	}
	page := a.mode.PageIndex()
	if !a.cache.LoadPage(page+1, page) {
		a.requestListing()
	}
	a.firstRow()
}

func (a *App) nextMode() {
	a.switchMode(a.mode.NextMode)
}

func (a *App) prevMode() {
	a.switchMode(a.mode.PrevMode)
}

func (a *App) switchMode(step func()) {
	a.firstRow()
	a.cache.StoreMode(a.mode.String(), a.mode.PageIndex())
	step()
	if !a.cache.LoadMode(a.mode.String(), a.mode.PageIndex()) {
		a.requestListing()
		return
	}
	a.resetSelection()
}
