package model

import (
	"strings"
	"time"
)

// Contact is a single address-book entry. Every contact belongs to exactly
// one user; UserID is never serialized to clients.
type Contact struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CountryCode string    `json:"country_code"`
	Message     string    `json:"message,omitempty"`
	Company     string    `json:"company,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactDraft carries the fields a client submits when creating a contact.
type ContactDraft struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	Message     string `json:"message"`
	Company     string `json:"company"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
	PhotoURL    string `json:"photo_url"`
}

// Normalize trims whitespace from every field. Empty optional fields are
// stored as NULL by the repository, so "" and absent are equivalent.
func (d *ContactDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.CountryCode = strings.TrimSpace(d.CountryCode)
	d.Message = strings.TrimSpace(d.Message)
	d.Company = strings.TrimSpace(d.Company)
	d.Address = strings.TrimSpace(d.Address)
	d.Notes = strings.TrimSpace(d.Notes)
	d.PhotoURL = strings.TrimSpace(d.PhotoURL)
}

// ContactUpdate is a partial field set for updating a contact.
// Nil fields are left untouched; a pointer to "" clears an optional field.
type ContactUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
	Message     *string `json:"message,omitempty"`
	Company     *string `json:"company,omitempty"`
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (u *ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.CountryCode == nil && u.Message == nil && u.Company == nil &&
		u.Address == nil && u.Notes == nil && u.PhotoURL == nil
}
