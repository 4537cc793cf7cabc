package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/repositories"
)

// ContractHandler handles hiring flows.
type ContractHandler struct {
	contracts *services.ContractService
}

// NewContractHandler creates a new contract handler.
func NewContractHandler(contracts *services.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// List handles GET /api/contracts
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.ContractFilter{
		ServiceID:  query.Get("serviceId"),
		ClientID:   query.Get("clientId"),
		ProviderID: query.Get("providerId"),
	}

	views, err := h.contracts.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, views)
}

// Hire handles POST /api/contracts
func (h *ContractHandler) Hire(w http.ResponseWriter, r *http.Request) {
	var input services.HireInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	contract, err := h.contracts.Hire(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, contract)
}

type updateContractRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/contracts
func (h *ContractHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	contract, err := h.contracts.UpdateStatus(r.Context(), payload.ID, payload.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contract)
}

// Delete handles DELETE /api/contracts (?id= or ?providerId=/?clientId=)
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if id := query.Get("id"); id != "" {
		if err := h.contracts.Delete(r.Context(), id); err != nil {
			respondWithAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	filter := repositories.ContractOwnerFilter{
		ProviderID: query.Get("providerId"),
		ClientID:   query.Get("clientId"),
	}
	if err := h.contracts.DeleteAll(r.Context(), filter); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
