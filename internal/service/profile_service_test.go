package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/contactbook/backend/internal/model"
)

func newTestProfileService(repo *mockProfileRepository, store *mockStorage) ProfileService {
	return NewProfileService(repo, store, "/uploads")
}

func TestProfileService_Get_ProvisionsMissingRow(t *testing.T) {
	repo := &mockProfileRepository{}
	svc := newTestProfileService(repo, &mockStorage{})

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.UserID != "u1" || p.DisplayName != "" {
		t.Errorf("unexpected provisioned profile %+v", p)
	}
	if _, ok := repo.profiles["u1"]; !ok {
		t.Error("missing profile row must be created on first read")
	}
}

func TestProfileService_Get_Unauthenticated(t *testing.T) {
	svc := newTestProfileService(&mockProfileRepository{}, &mockStorage{})
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProfileService_Update_PartialFields(t *testing.T) {
	repo := &mockProfileRepository{profiles: map[string]*model.Profile{
		"u1": {UserID: "u1", DisplayName: "Old", AvatarURL: "/uploads/avatars/u1/a.png"},
	}}
	svc := newTestProfileService(repo, &mockStorage{})

	name := "New Name"
	p, err := svc.Update(context.Background(), "u1", model.ProfileUpdate{DisplayName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.DisplayName != "New Name" {
		t.Errorf("display name not applied: %q", p.DisplayName)
	}
	if p.AvatarURL != "/uploads/avatars/u1/a.png" {
		t.Errorf("omitted field must stay untouched, got %q", p.AvatarURL)
	}
}

func TestProfileService_Update_ReplacingAvatarDropsOldObject(t *testing.T) {
	repo := &mockProfileRepository{profiles: map[string]*model.Profile{
		"u1": {UserID: "u1", AvatarURL: "/uploads/avatars/u1/old.png"},
	}}
	store := &mockStorage{}
	svc := newTestProfileService(repo, store)

	empty := ""
	if _, err := svc.Update(context.Background(), "u1", model.ProfileUpdate{AvatarURL: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != "avatars/u1/old.png" {
		t.Errorf("expected old avatar object removed, got %v", store.deletedKeys)
	}
}

func TestProfileService_UploadAvatar_RejectsBeforeStorage(t *testing.T) {
	store := &mockStorage{}
	svc := newTestProfileService(&mockProfileRepository{}, store)

	if _, err := svc.UploadAvatar(context.Background(), "u1", "text/plain", 10, strings.NewReader("x")); !errors.Is(err, ErrUploadRejected) {
		t.Errorf("expected ErrUploadRejected for content type, got %v", err)
	}
	if _, err := svc.UploadAvatar(context.Background(), "u1", "image/webp", maxUploadSize+1, strings.NewReader("x")); !errors.Is(err, ErrUploadRejected) {
		t.Errorf("expected ErrUploadRejected for oversize, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("storage must not be contacted on rejected uploads, got %d saves", store.saveCalls)
	}
}

func TestProfileService_UploadAvatar_ReplacesAndPersists(t *testing.T) {
	repo := &mockProfileRepository{profiles: map[string]*model.Profile{
		"u1": {UserID: "u1", AvatarURL: "/uploads/avatars/u1/old.png"},
	}}
	store := &mockStorage{}
	svc := newTestProfileService(repo, store)

	p, err := svc.UploadAvatar(context.Background(), "u1", "image/png", 2048, strings.NewReader("png"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != "avatars/u1/old.png" {
		t.Errorf("expected old avatar removed first, got %v", store.deletedKeys)
	}
	if len(store.savedKeys) != 1 || !strings.HasPrefix(store.savedKeys[0], "avatars/u1/") || !strings.HasSuffix(store.savedKeys[0], ".png") {
		t.Errorf("unexpected storage key %v", store.savedKeys)
	}
	if p.AvatarURL != "/uploads/"+store.savedKeys[0] {
		t.Errorf("avatar URL not persisted, got %q", p.AvatarURL)
	}
}

func TestProfileService_RemoveAvatar(t *testing.T) {
	repo := &mockProfileRepository{profiles: map[string]*model.Profile{
		"u1": {UserID: "u1", AvatarURL: "/uploads/avatars/u1/a.webp"},
	}}
	store := &mockStorage{}
	svc := newTestProfileService(repo, store)

	p, err := svc.RemoveAvatar(context.Background(), "u1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if p.AvatarURL != "" {
		t.Errorf("avatar URL must be cleared, got %q", p.AvatarURL)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != "avatars/u1/a.webp" {
		t.Errorf("expected stored object removed, got %v", store.deletedKeys)
	}
}
