package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/repositories"
)

// UserHandler handles account administration and favorites.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// UpdateProfile handles PUT /api/users
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

type adminUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// AdminUpdate handles PUT /api/users/{id}
func (h *UserHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var payload adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patch := repositories.UserPatch{
		Name:  payload.Name,
		Email: payload.Email,
		Role:  payload.Role,
	}
	user, err := h.users.AdminUpdate(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// ListFavorites handles GET /api/favorites
func (h *UserHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	listings, err := h.users.ListFavorites(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listings)
}

type toggleFavoriteRequest struct {
	UserID    string `json:"userId"`
	ServiceID string `json:"serviceId"`
}

// ToggleFavorite handles POST /api/favorites
func (h *UserHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var payload toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	favorites, err := h.users.ToggleFavorite(r.Context(), payload.UserID, payload.ServiceID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{"favorites": favorites})
}
