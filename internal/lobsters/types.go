package lobsters

import (
	"encoding/json"
	"fmt"
	"time"
)

// Post is the subset of lobste.rs story fields required by the app.
type Post struct {
	ShortID          string    `json:"short_id"`
	ShortIDURL       string    `json:"short_id_url"`
	CreatedAt        time.Time `json:"created_at"`
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	Score            int       `json:"score"`
	CommentCount     int       `json:"comment_count"`
	Description      string    `json:"description"`
	DescriptionPlain string    `json:"description_plain"`
	CommentsURL      string    `json:"comments_url"`
	Submitter        Username  `json:"submitter_user"`
	Tags             []string  `json:"tags"`

	IsRead   bool      `json:"-"`
	Comments []Comment `json:"-"`
}

// IsTextPost reports whether the story has no external link, in which case
// its comments page is the destination.
func (p Post) IsTextPost() bool {
	return p.URL == ""
}

// Destination is the URL a post opens: its link, or its comments for text posts.
func (p Post) Destination() string {
	if p.IsTextPost() {
		return p.CommentsURL
	}
	return p.URL
}

// Comment is one entry of a story's comment thread. Depth 0 is top level.
type Comment struct {
	CreatedAt    time.Time `json:"created_at"`
	Score        int       `json:"score"`
	Comment      string    `json:"comment"`
	CommentPlain string    `json:"comment_plain"`
	Depth        int       `json:"depth"`
	Author       Username  `json:"commenting_user"`
	URL          string    `json:"url"`
}

// PostDetails is the comment thread of one story.
type PostDetails struct {
	ShortID  string    `json:"short_id"`
	Comments []Comment `json:"comments"`
}

// Username decodes either a plain string or a user object carrying a
// "username" field; the API has served both shapes.
type Username string

func (u *Username) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = ""
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*u = Username(name)
		return nil
	}
	var obj struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode username: %w", err)
	}
	*u = Username(obj.Username)
	return nil
}

func (u Username) String() string {
	return string(u)
}
