package domain

import "time"

// ContactSubmission is a request received through the public contact form.
type ContactSubmission struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Company       *string
	Service       string
	Budget        *string
	Message       *string
	PreferredDate *string
	PreferredTime *string
	CreatedAt     time.Time
}
