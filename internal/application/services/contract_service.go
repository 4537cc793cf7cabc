package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// Labels shown to clients when their contract changes status.
var contractStatusLabels = map[string]string{
	entities.ContractStatusAccepted:  "Aceptada",
	entities.ContractStatusCompleted: "Finalizada",
	entities.ContractStatusRejected:  "Rechazada",
}

// ContractService handles hiring flows and their notifications.
type ContractService struct {
	contracts     repositories.ContractRepository
	services      repositories.ServiceRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewContractService creates a new contract service.
func NewContractService(
	contracts repositories.ContractRepository,
	services repositories.ServiceRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *ContractService {
	return &ContractService{
		contracts:     contracts,
		services:      services,
		users:         users,
		notifications: notifications,
	}
}

// HireInput identifies the service being hired and both parties.
type HireInput struct {
	ServiceID  string `json:"serviceId"`
	ClientID   string `json:"clientId"`
	ProviderID string `json:"providerId"`
}

// Hire creates a pending contract, then notifies the provider. The
// notification is best-effort: its failure never rolls the contract back.
func (s *ContractService) Hire(ctx context.Context, input HireInput) (*entities.Contract, error) {
	if input.ServiceID == "" || input.ClientID == "" || input.ProviderID == "" {
		return nil, apperrors.NewValidationError("serviceId, clientId and providerId are required")
	}

	contract := &entities.Contract{
		ServiceID:  input.ServiceID,
		ClientID:   input.ClientID,
		ProviderID: input.ProviderID,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	clientName := "Un usuario"
	if client, err := s.users.GetByID(ctx, input.ClientID); err == nil {
		clientName = client.Name
	}
	notification := &entities.Notification{
		UserID:  input.ProviderID,
		Message: fmt.Sprintf("¡Nueva solicitud! %s quiere contratar tu servicio.", clientName),
		Type:    entities.NotificationTypeContract,
		Link:    "/dashboard",
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Str("contract_id", contract.ID).Msg("failed to notify provider about new contract")
	}

	return contract, nil
}

// List returns contracts matching the filter, each enriched with its
// service detail and a compact client block. Dangling references yield
// nil blocks, never errors.
func (s *ContractService) List(ctx context.Context, filter repositories.ContractFilter) ([]*entities.ContractView, error) {
	contracts, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.ContractView, 0, len(contracts))
	for _, c := range contracts {
		view := &entities.ContractView{Contract: *c}
		if detail, err := s.services.GetDetail(ctx, c.ServiceID); err == nil {
			view.Service = detail
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
		if client, err := s.users.GetByID(ctx, c.ClientID); err == nil {
			view.Client = &entities.ContractClient{
				Name:  client.Name,
				Email: client.Email,
				Phone: client.Phone,
			}
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// UpdateStatus moves a contract to a new status and notifies the client.
// Transitions are caller-driven; any known status is accepted from any
// other.
func (s *ContractService) UpdateStatus(ctx context.Context, id, status string) (*entities.Contract, error) {
	if id == "" || status == "" {
		return nil, apperrors.NewValidationError("id and status are required")
	}
	if !entities.ValidContractStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown contract status %q", status))
	}

	updated, err := s.contracts.Update(ctx, id, repositories.ContractPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	if label, ok := contractStatusLabels[status]; ok {
		notification := &entities.Notification{
			UserID:  updated.ClientID,
			Message: fmt.Sprintf("Tu solicitud para el servicio ha sido actualizada a: %s", label),
			Type:    entities.NotificationTypeSystem,
			Link:    "/dashboard",
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			log.Warn().Err(err).Str("contract_id", id).Msg("failed to notify client about contract status")
		}
	}

	return updated, nil
}

// Delete removes a single contract.
func (s *ContractService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.contracts.Delete(ctx, id)
}

// DeleteAll removes every contract belonging to the given provider or
// client.
func (s *ContractService) DeleteAll(ctx context.Context, filter repositories.ContractOwnerFilter) error {
	if filter.ProviderID == "" && filter.ClientID == "" {
		return apperrors.NewValidationError("providerId or clientId is required")
	}
	return s.contracts.DeleteAll(ctx, filter)
}
