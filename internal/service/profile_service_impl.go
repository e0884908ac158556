package service

import (
	"context"
	"errors"
	"io"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/internal/storage"
)

// profileServiceImpl is the production implementation of ProfileService.
type profileServiceImpl struct {
	repo      repository.ProfileRepository
	store     storage.Storage
	urlPrefix string
}

// NewProfileService creates a ProfileService backed by the given repository
// and object storage.
func NewProfileService(repo repository.ProfileRepository, store storage.Storage, urlPrefix string) ProfileService {
	return &profileServiceImpl{repo: repo, store: store, urlPrefix: urlPrefix}
}

func (s *profileServiceImpl) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		// Signup normally provisions the row; recover if it is missing.
		p = &model.Profile{UserID: userID}
		if createErr := s.repo.Create(ctx, p); createErr != nil {
			return nil, createErr
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileServiceImpl) Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// When the avatar is being replaced or cleared, drop the old object.
	if update.AvatarURL != nil {
		if current, err := s.repo.FindByUserID(ctx, userID); err == nil && current.AvatarURL != *update.AvatarURL {
			if key := storageKeyFromURL(current.AvatarURL, s.urlPrefix); key != "" {
				_ = s.store.Delete(ctx, key)
			}
		}
	}

	return s.repo.Update(ctx, userID, update)
}

func (s *profileServiceImpl) UploadAvatar(ctx context.Context, userID, contentType string, size int64, data io.Reader) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	ext, err := validateImageUpload(contentType, size)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if key := storageKeyFromURL(current.AvatarURL, s.urlPrefix); key != "" {
		_ = s.store.Delete(ctx, key)
	}

	url, err := s.store.Save(ctx, objectKey("avatars", userID, ext), data, contentType)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, userID, model.ProfileUpdate{AvatarURL: &url})
}

func (s *profileServiceImpl) RemoveAvatar(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	empty := ""
	return s.Update(ctx, userID, model.ProfileUpdate{AvatarURL: &empty})
}
