package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/state"
)

func (a *App) handle(ev Event) {
	switch ev := ev.(type) {
	case ListingLoaded:
		a.onListingLoaded(ev)
	case DetailLoaded:
		a.onDetailLoaded(ev)
	case KeyEvent:
		a.handleKey(ev)
	case MouseEvent:
		a.handleMouse(ev)
	case ResizeEvent:
		if ev.Height > a.height {
			a.firstRow()
		}
		a.height = ev.Height
	}
}

func (a *App) onListingLoaded(ev ListingLoaded) {
	a.log.Debug("listing loaded", "mode", ev.Mode, "page", ev.Mode.Page, "posts", len(ev.Posts))
	a.cache.Posts = ev.Posts
	a.flags.LoadingListing.Store(false)
	a.resetSelection()
}

// onDetailLoaded attaches comments to the matching post of the working list.
// Responses for posts that are no longer listed are dropped.
func (a *App) onDetailLoaded(ev DetailLoaded) {
	a.flags.LoadingDetail.Store(false)
	i := state.IndexOf(a.cache.Posts, func(p lobsters.Post) string { return p.ShortID }, ev.Details.ShortID)
	if i < 0 {
		a.log.Debug("dropped comments of unlisted post", "post", ev.Details.ShortID)
		return
	}
	a.cache.Posts[i].Comments = ev.Details.Comments
	if i == a.postSel {
		a.commentSel = state.ClampCursor(a.commentSel, len(ev.Details.Comments))
	}
}

func (a *App) handleKey(ev KeyEvent) {
	k := a.keys
	if key.Matches(ev, k.ForceQuit) {
		a.log.Info("forced quit")
		a.exitCode = 1
		a.flags.Running.Store(false)
		return
	}

	a.status = ""
	switch {
	case key.Matches(ev, k.Quit):
		a.flags.Running.Store(false)

	case key.Matches(ev, k.Close):
		a.showDetail = false
		a.showHelp = false
	case key.Matches(ev, k.Help):
		a.showHelp = !a.showHelp
		return
	case key.Matches(ev, k.Details):
		a.toggleDetails()

	case key.Matches(ev, k.Open):
		if a.showDetail {
			a.openComment()
		} else if i, ok := a.selected(); ok {
			a.openPost(i)
		}
	case key.Matches(ev, k.Comments):
		if i, ok := a.selected(); ok {
			a.openComments(i)
		}
	case key.Matches(ev, k.Read):
		if i, ok := a.selected(); ok {
			a.markRead(i)
		}
	case key.Matches(ev, k.Unread):
		if i, ok := a.selected(); ok {
			a.markUnread(i)
		}
	case key.Matches(ev, k.Copy):
		if i, ok := a.selected(); ok {
			a.copyLink(i)
		}
	case key.Matches(ev, k.Refresh):
		if a.showDetail {
			if i, ok := a.selected(); ok {
				a.loadComments(i)
			}
		} else {
			a.requestListing()
		}

	case key.Matches(ev, k.Down):
		a.nextRow()
	case key.Matches(ev, k.Up):
		a.previousRow()
	case key.Matches(ev, k.PrevPage):
		if !a.showDetail {
			a.previousPage()
		}
	case key.Matches(ev, k.NextPage):
		if !a.showDetail {
			a.nextPage()
		}
	case key.Matches(ev, k.First):
		a.firstRow()
	case key.Matches(ev, k.Last):
		a.lastRow()
	case key.Matches(ev, k.NextMode):
		a.nextMode()
	case key.Matches(ev, k.PrevMode):
		a.prevMode()

	default:
		if i := shortcutIndex(ev.Key); i >= 0 && i < len(a.cache.Posts) {
			a.openPost(i)
		}
	}

	// The help popup is a transient overlay.
	a.showHelp = false
}

func (a *App) handleMouse(ev MouseEvent) {
	hovered := ev.Index >= 0 && ev.Index < len(a.cache.Posts)

	switch ev.Kind {
	case MouseWheelDown:
		a.nextRow()
	case MouseWheelUp:
		a.previousRow()
	case MouseWheelLeft:
		if !a.showDetail {
			a.previousPage()
		}
	case MouseWheelRight:
		if !a.showDetail {
			a.nextPage()
		}
	case MouseMotion:
		if !a.showDetail && hovered {
			a.selectPost(ev.Index)
		}
	case MouseLeft:
		if !hovered {
			return
		}
		if a.showDetail {
			a.openComment()
		} else {
			a.openPost(ev.Index)
		}
	case MouseRight:
		if hovered {
			a.toggleDetails()
		}
	case MouseMiddle:
		if hovered {
			if i, ok := a.selected(); ok {
				a.openComments(i)
			}
		}
	}
}
