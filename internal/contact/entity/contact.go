package entity

import "time"

// Submission is one contact-form message with the request metadata
// captured at submit time.
type Submission struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject,omitempty"`
	Message   string    `db:"message" json:"message"`
	IPAddress string    `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent string    `db:"user_agent" json:"userAgent,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Statuses a submission moves through during admin triage.
var Statuses = []string{"new", "read", "responded"}

const DefaultStatus = "new"
