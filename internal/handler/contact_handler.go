package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactbook/backend/internal/contactview"
	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/pkg/auth"
)

// ContactHandler serves the per-user contact CRUD endpoints.
// All endpoints run behind RequireAuth.
type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type contactListResponse struct {
	Contacts []*model.Contact `json:"contacts"`
	Sort     string           `json:"sort"`
}

// List handles GET /api/contacts. Query params: q (search term across name,
// email, phone, company) and sort (name-asc/name-desc/date-asc/date-desc;
// unknown values fall back to name-asc).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	contacts, err := h.contactService.List(r.Context(), userID)
	if err != nil {
		slog.Error("contact list failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	sortBy := contactview.Parse(r.URL.Query().Get("sort"))
	view := contactview.FilterAndSort(contacts, r.URL.Query().Get("q"), sortBy)

	_ = json.NewEncoder(w).Encode(contactListResponse{
		Contacts: view,
		Sort:     string(sortBy),
	})
}

type contactResponse struct {
	Contact *model.Contact `json:"contact"`
	Message string         `json:"message"`
}

// Create handles POST /api/contacts. Field errors come back as a 400 with
// an errors map keyed by field name.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var draft model.ContactDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	draft.Normalize()
	if fieldErrors := contactview.Validate(draft); len(fieldErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": fieldErrors})
		return
	}

	contact, err := h.contactService.Add(r.Context(), userID, draft)
	if err != nil {
		slog.Error("contact create failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(contactResponse{
		Contact: contact,
		Message: "Contact added! The contact has been saved successfully.",
	})
}

// Update handles PUT /api/contacts/{id}. Only supplied fields are validated
// and applied.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := r.PathValue("id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	var update model.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if fieldErrors := contactview.ValidateUpdate(update); len(fieldErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": fieldErrors})
		return
	}

	contact, err := h.contactService.Update(r.Context(), userID, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("contact update failed", "error", err, "user_id", userID, "contact_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(contactResponse{
		Contact: contact,
		Message: "Contact updated. Changes have been saved.",
	})
}

// Delete handles DELETE /api/contacts/{id}. Deleting an id that does not
// exist (or belongs to someone else) is a 404, not a silent success.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := r.PathValue("id")
	if err := h.contactService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("contact delete failed", "error", err, "user_id", userID, "contact_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "delete_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Contact deleted. The contact has been removed.",
	})
}

// UploadPhoto handles POST /api/contacts/{id}/photo (multipart field "photo").
func (h *ContactHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := r.PathValue("id")
	file, header, err := formImage(w, r, "photo")
	if err != nil {
		return // formImage already wrote the response
	}
	defer file.Close()

	url, err := h.contactService.UploadPhoto(r.Context(), userID, id, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadRejected):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Please select an image under 5MB."})
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		default:
			slog.Error("photo upload failed", "error", err, "user_id", userID, "contact_id", id)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		}
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"photo_url": url,
		"message":   "Photo uploaded! Contact photo has been added.",
	})
}

// RemovePhoto handles DELETE /api/contacts/{id}/photo.
func (h *ContactHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := r.PathValue("id")
	if err := h.contactService.RemovePhoto(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("photo remove failed", "error", err, "user_id", userID, "contact_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "remove_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Photo removed. The profile picture has been cleared.",
	})
}
