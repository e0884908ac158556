package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/pkg/auth"
)

// ProfileHandler serves the caller's own profile and avatar. Runs behind
// RequireAuth.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type profileResponse struct {
	Profile *model.Profile `json:"profile"`
	Message string         `json:"message,omitempty"`
}

// Get handles GET /api/me/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		slog.Error("profile read failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "profile_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(profileResponse{Profile: profile})
}

// Update handles PUT /api/me/profile. Only supplied fields are applied.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if update.IsEmpty() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no_fields"})
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, update)
	if err != nil {
		slog.Error("profile update failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(profileResponse{
		Profile: profile,
		Message: "Profile updated. Your changes have been saved.",
	})
}

// UploadAvatar handles POST /api/me/avatar (multipart field "avatar").
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	file, header, err := formImage(w, r, "avatar")
	if err != nil {
		return
	}
	defer file.Close()

	profile, err := h.profileService.UploadAvatar(r.Context(), userID, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		if errors.Is(err, service.ErrUploadRejected) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Please select an image under 5MB."})
			return
		}
		slog.Error("avatar upload failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(profileResponse{
		Profile: profile,
		Message: "Photo uploaded! Your avatar has been updated.",
	})
}

// RemoveAvatar handles DELETE /api/me/avatar.
func (h *ProfileHandler) RemoveAvatar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.RemoveAvatar(r.Context(), userID)
	if err != nil {
		slog.Error("avatar remove failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "remove_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(profileResponse{
		Profile: profile,
		Message: "Photo removed. The profile picture has been cleared.",
	})
}
