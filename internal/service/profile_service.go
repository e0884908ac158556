package service

import (
	"context"
	"io"

	"github.com/contactbook/backend/internal/model"
)

// ProfileService defines the business logic for the caller's own profile.
type ProfileService interface {
	// Get returns the caller's profile, provisioning an empty one if signup
	// era creation was lost.
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// Update applies only the supplied fields and returns the result.
	Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error)

	// UploadAvatar validates and stores an avatar image and persists its URL.
	UploadAvatar(ctx context.Context, userID, contentType string, size int64, data io.Reader) (*model.Profile, error)

	// RemoveAvatar deletes the stored avatar and clears the URL.
	RemoveAvatar(ctx context.Context, userID string) (*model.Profile, error)
}
