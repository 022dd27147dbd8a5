package entity

import (
	"time"

	"github.com/lib/pq"
)

// Project is a portfolio entry. Publicly readable, admin-writable.
type Project struct {
	ID                  string         `db:"id" json:"id"`
	Title               string         `db:"title" json:"title"`
	Description         string         `db:"description" json:"description"`
	DetailedDescription string         `db:"detailed_description" json:"detailedDescription"`
	Technologies        pq.StringArray `db:"technologies" json:"technologies"`
	Category            string         `db:"category" json:"category"`
	ImageURL            string         `db:"image_url" json:"imageUrl"`
	LiveURL             string         `db:"live_url" json:"liveUrl,omitempty"`
	GithubURL           string         `db:"github_url" json:"githubUrl,omitempty"`
	Features            pq.StringArray `db:"features" json:"features"`
	Challenges          string         `db:"challenges" json:"challenges,omitempty"`
	Solutions           string         `db:"solutions" json:"solutions,omitempty"`
	Order               int            `db:"display_order" json:"order"`
	Featured            bool           `db:"featured" json:"featured"`
	Status              string         `db:"status" json:"status"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

// Categories is the closed set of project categories.
var Categories = []string{"Frontend", "Backend", "Full Stack", "Mobile", "Other"}

// Statuses is the closed set of project statuses.
var Statuses = []string{"completed", "in-progress", "archived"}

const (
	DefaultCategory = "Full Stack"
	DefaultStatus   = "completed"
	DefaultImageURL = "https://via.placeholder.com/600x400"
)
