package company

import "time"

type Company struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo"`
	Industry     string    `json:"industry"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Size         string    `json:"size"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the subset of company data populated onto job payloads.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo"`
}

type CompanyRq struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logo"`
	Industry     string `json:"industry"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Size         string `json:"size"`
	ContactEmail string `json:"contact_email"`
}
