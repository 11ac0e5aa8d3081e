package app

import (
	"fmt"

	"github.com/glabrego/lobsters-cli/internal/state"
)

// requestListing asks the listing worker for the current mode and page.
func (a *App) requestListing() {
	a.flags.LoadingListing.Store(true)
	a.log.Debug("request listing", "mode", a.mode, "page", a.mode.Page)
	a.listingReqs.push(a.mode)
}

// loadComments asks the detail worker for the comments of post i.
func (a *App) loadComments(i int) {
	if a.opts.PreviewingCommentsMarksRead {
		a.markRead(i)
	}
	post := a.post(i)
	a.flags.LoadingDetail.Store(true)
	a.log.Debug("request comments", "post", post.ShortID)
	a.detailReqs.push(post.ShortID)
}

// toggleDetails opens or closes the detail popup of the selected post. The
// comments are fetched only when opening.
func (a *App) toggleDetails() {
	i, ok := a.selected()
	if !ok {
		return
	}
	if !a.showDetail {
		a.loadComments(i)
	}
	a.commentSel = 0
	a.showDetail = !a.showDetail
}

// openPost launches the post's link, or its comments for text posts, and
// marks it read when the launch worked.
func (a *App) openPost(i int) {
	post := a.post(i)
	if post.IsTextPost() {
		if !a.openComments(i) {
			return
		}
	} else if !a.open(post.URL) {
		return
	}
	a.markRead(i)
}

func (a *App) openComments(i int) bool {
	if !a.open(a.post(i).CommentsURL) {
		return false
	}
	if a.opts.OpeningCommentsMarksRead {
		a.markRead(i)
	}
	return true
}

// openComment launches the selected comment of the detail popup.
func (a *App) openComment() {
	comments := a.currentComments()
	if len(comments) == 0 {
		return
	}
	state.MustInBounds(a.commentSel, len(comments))
	a.open(comments[a.commentSel].URL)
}

func (a *App) open(url string) bool {
	if url == "" {
		a.status = "Nothing to open"
		return false
	}
	if err := a.opener.Open(url); err != nil {
		a.log.Warn("open link failed", "url", url, "err", err)
		a.status = fmt.Sprintf("Could not open link: %v", err)
		return false
	}
	a.log.Debug("opened link", "url", url)
	return true
}

func (a *App) copyLink(i int) {
	url := a.post(i).Destination()
	if err := a.opener.Copy(url); err != nil {
		a.log.Warn("copy link failed", "url", url, "err", err)
		a.status = fmt.Sprintf("Could not copy link: %v", err)
		return
	}
	a.status = "Copied " + url
}

// markRead flags post i read right away and queues the durable write. A post
// that is already read queues nothing.
func (a *App) markRead(i int) {
	post := a.post(i)
	if post.IsRead {
		return
	}
	post.IsRead = true
	a.dispatch(Action{Kind: MarkRead, ShortID: post.ShortID})
}

// markUnread always queues the durable write, even for unread posts.
func (a *App) markUnread(i int) {
	post := a.post(i)
	post.IsRead = false
	a.dispatch(Action{Kind: MarkUnread, ShortID: post.ShortID})
}

func (a *App) dispatch(action Action) {
	a.log.Debug("queue persistence action", "action", action.Kind, "post", action.ShortID)
	a.actions.push(action)
}
