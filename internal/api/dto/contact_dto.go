package dto

// ContactRequest payload for the public contact form.
type ContactRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Service       string `json:"service"`
	Budget        string `json:"budget"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}
