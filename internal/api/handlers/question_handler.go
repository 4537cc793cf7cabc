package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
)

// QuestionHandler handles public Q&A.
type QuestionHandler struct {
	questions *services.QuestionService
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// List handles GET /api/questions (?serviceId= or ?providerId=)
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceID := query.Get("serviceId")
	providerID := query.Get("providerId")

	switch {
	case serviceID != "":
		views, err := h.questions.ListByService(r.Context(), serviceID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, views)
	case providerID != "":
		views, err := h.questions.ListByProvider(r.Context(), providerID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, views)
	default:
		respondWithError(w, http.StatusBadRequest, "serviceId or providerId is required")
	}
}

// Ask handles POST /api/questions
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var input services.AskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	question, err := h.questions.Ask(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, question)
}

type answerRequest struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

// Answer handles PUT /api/questions
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var payload answerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	question, err := h.questions.Answer(r.Context(), payload.ID, payload.Answer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, question)
}
