package service

import (
	"context"
	"io"

	"github.com/contactbook/backend/internal/model"
)

// ContactService defines the business logic for a user's address book.
// Every operation is scoped to the calling user; an empty userID fails with
// ErrUnauthenticated before any persistence work happens.
type ContactService interface {
	// List returns all contacts owned by userID, name ascending.
	// Returns an empty slice, not an error, when the user owns none.
	List(ctx context.Context, userID string) ([]*model.Contact, error)

	// Add stores a new contact from the draft. The draft must already have
	// passed validation; Add normalizes optional empty fields and applies
	// the default dial code.
	Add(ctx context.Context, userID string, draft model.ContactDraft) (*model.Contact, error)

	// Update applies only the supplied fields and returns the updated contact.
	Update(ctx context.Context, userID, id string, update model.ContactUpdate) (*model.Contact, error)

	// Delete permanently removes the contact. Deleting an id the caller does
	// not own fails with repository.ErrNotFound.
	Delete(ctx context.Context, userID, id string) error

	// UploadPhoto validates and stores a contact photo, persists its URL,
	// and returns the URL.
	UploadPhoto(ctx context.Context, userID, id, contentType string, size int64, data io.Reader) (string, error)

	// RemovePhoto deletes the stored photo and clears the contact's URL.
	RemovePhoto(ctx context.Context, userID, id string) error
}
