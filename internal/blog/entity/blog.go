package entity

import (
	"time"

	"github.com/lib/pq"
)

// Post is a blog entry keyed publicly by slug. Content is omitted from
// list responses and only hydrated on detail reads.
type Post struct {
	ID         string         `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Slug       string         `db:"slug" json:"slug"`
	Excerpt    string         `db:"excerpt" json:"excerpt"`
	Content    string         `db:"content" json:"content,omitempty"`
	Author     string         `db:"author" json:"author"`
	CoverImage string         `db:"cover_image" json:"coverImage"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	Category   string         `db:"category" json:"category"`
	Published  bool           `db:"published" json:"published"`
	Views      int64          `db:"views" json:"views"`
	ReadTime   int            `db:"read_time" json:"readTime"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// Categories is the closed set of blog categories.
var Categories = []string{"Web Development", "MERN Stack", "Tutorial", "Tips & Tricks", "Career", "Other"}

const (
	DefaultCategory   = "Web Development"
	DefaultAuthor     = "Admin"
	DefaultCoverImage = "https://via.placeholder.com/800x400"
)
