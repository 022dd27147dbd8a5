package contact

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"portfolio-api/internal/httpx"
)

// SubmissionInput is the public contact-form payload before validation.
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateSubmission runs the declarative field checks and returns every
// violation found, so the form can surface all of them at once. A nil
// slice means the payload is acceptable; fields come back trimmed and the
// email lowercased.
func ValidateSubmission(in *SubmissionInput) []httpx.FieldError {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	var errs []httpx.FieldError

	if in.Name == "" {
		errs = append(errs, httpx.FieldError{Field: "name", Message: "Name is required"})
	} else if utf8.RuneCountInString(in.Name) > 100 {
		errs = append(errs, httpx.FieldError{Field: "name", Message: "Name cannot exceed 100 characters"})
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, httpx.FieldError{Field: "email", Message: "Valid email is required"})
	}

	if in.Message == "" {
		errs = append(errs, httpx.FieldError{Field: "message", Message: "Message is required"})
	} else if utf8.RuneCountInString(in.Message) > 1000 {
		errs = append(errs, httpx.FieldError{Field: "message", Message: "Message cannot exceed 1000 characters"})
	}

	if utf8.RuneCountInString(in.Subject) > 200 {
		errs = append(errs, httpx.FieldError{Field: "subject", Message: "Subject cannot exceed 200 characters"})
	}

	return errs
}
