package service

import (
	"context"
	"io"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/contactbook/backend/internal/country"
	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/internal/storage"
)

// listCacheTTL bounds staleness for reads that race a mutation from another
// session; mutations through this process invalidate immediately.
const listCacheTTL = time.Minute

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.ContactRepository
	store     storage.Storage
	urlPrefix string
	cache     *expirable.LRU[string, []*model.Contact]
}

// NewContactService creates a ContactService backed by the given repository
// and object storage. urlPrefix must match the prefix the storage serves
// public URLs under.
func NewContactService(repo repository.ContactRepository, store storage.Storage, urlPrefix string) ContactService {
	return &contactServiceImpl{
		repo:      repo,
		store:     store,
		urlPrefix: urlPrefix,
		cache:     expirable.NewLRU[string, []*model.Contact](0, nil, listCacheTTL),
	}
}

func (s *contactServiceImpl) List(ctx context.Context, userID string) ([]*model.Contact, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	contacts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	s.cache.Add(userID, contacts)
	return contacts, nil
}

func (s *contactServiceImpl) Add(ctx context.Context, userID string, draft model.ContactDraft) (*model.Contact, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	draft.Normalize()
	if draft.CountryCode == "" {
		draft.CountryCode = country.Default().DialCode
	}

	c := &model.Contact{
		UserID:      userID,
		Name:        draft.Name,
		Email:       draft.Email,
		Phone:       draft.Phone,
		CountryCode: draft.CountryCode,
		Message:     draft.Message,
		Company:     draft.Company,
		Address:     draft.Address,
		Notes:       draft.Notes,
		PhotoURL:    draft.PhotoURL,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	// Invalidation strictly follows the completed write; the next List
	// re-reads and observes the new record.
	s.cache.Remove(userID)
	return c, nil
}

func (s *contactServiceImpl) Update(ctx context.Context, userID, id string, update model.ContactUpdate) (*model.Contact, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	c, err := s.repo.Update(ctx, userID, id, update)
	if err != nil {
		return nil, err
	}
	s.cache.Remove(userID)
	return c, nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	// The record is gone; its photo is best-effort cleanup.
	if key := storageKeyFromURL(c.PhotoURL, s.urlPrefix); key != "" {
		_ = s.store.Delete(ctx, key)
	}
	s.cache.Remove(userID)
	return nil
}

func (s *contactServiceImpl) UploadPhoto(ctx context.Context, userID, id, contentType string, size int64, data io.Reader) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	ext, err := validateImageUpload(contentType, size)
	if err != nil {
		return "", err
	}

	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return "", err
	}

	if key := storageKeyFromURL(c.PhotoURL, s.urlPrefix); key != "" {
		_ = s.store.Delete(ctx, key)
	}

	url, err := s.store.Save(ctx, objectKey("contacts", userID, ext), data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePhotoURL(ctx, userID, id, url); err != nil {
		return "", err
	}

	s.cache.Remove(userID)
	return url, nil
}

func (s *contactServiceImpl) RemovePhoto(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if key := storageKeyFromURL(c.PhotoURL, s.urlPrefix); key != "" {
		_ = s.store.Delete(ctx, key)
	}
	if err := s.repo.UpdatePhotoURL(ctx, userID, id, ""); err != nil {
		return err
	}

	s.cache.Remove(userID)
	return nil
}
