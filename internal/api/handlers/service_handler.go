package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/repositories"
)

// ServiceHandler handles the listings catalog.
type ServiceHandler struct {
	catalog *services.CatalogService
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(catalog *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List handles GET /api/services
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.ServiceFilter{
		Category:   query.Get("category"),
		Location:   query.Get("location"),
		ProviderID: query.Get("providerId"),
	}

	listings, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listings)
}

// Get handles GET /api/services/{id}
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/services
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	service, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, service)
}

type updateServiceRequest struct {
	ID              string  `json:"id"`
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Location        *string `json:"location"`
	Price           *string `json:"price"`
	Image           *string `json:"image"`
	SocialInstagram *string `json:"socialInstagram"`
	SocialWhatsapp  *string `json:"socialWhatsapp"`
}

// Update handles PUT /api/services
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload updateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	patch := repositories.ServicePatch{
		Title:           payload.Title,
		Description:     payload.Description,
		Category:        payload.Category,
		Location:        payload.Location,
		Price:           payload.Price,
		Image:           payload.Image,
		SocialInstagram: payload.SocialInstagram,
		SocialWhatsapp:  payload.SocialWhatsapp,
	}
	service, err := h.catalog.Update(r.Context(), payload.ID, patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, service)
}

// Delete handles DELETE /api/services/{id}
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	service, err := h.catalog.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, service)
}

// DeleteByQuery handles DELETE /api/services (?id=)
func (h *ServiceHandler) DeleteByQuery(w http.ResponseWriter, r *http.Request) {
	service, err := h.catalog.Delete(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, service)
}
