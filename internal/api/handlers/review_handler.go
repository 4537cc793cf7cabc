package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
)

// ReviewHandler handles ratings.
type ReviewHandler struct {
	reviews *services.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /api/reviews (?serviceId= or ?providerId=)
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceID := query.Get("serviceId")
	providerID := query.Get("providerId")

	switch {
	case serviceID != "":
		reviews, err := h.reviews.ListByService(r.Context(), serviceID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, reviews)
	case providerID != "":
		reviews, err := h.reviews.ListByProvider(r.Context(), providerID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, reviews)
	default:
		respondWithError(w, http.StatusBadRequest, "serviceId or providerId is required")
	}
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.reviews.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}
