package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/repositories"
)

// CollectionResult counts the outcome of one import stage.
type CollectionResult struct {
	Imported int `json:"imported"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
}

// ImportSummary is the per-collection outcome of a snapshot import.
type ImportSummary struct {
	Users         CollectionResult `json:"users"`
	Services      CollectionResult `json:"services"`
	Contracts     CollectionResult `json:"contracts"`
	Notifications CollectionResult `json:"notifications"`
	Reviews       CollectionResult `json:"reviews"`
	Questions     CollectionResult `json:"questions"`
}

// ImportService transfers a legacy JSON snapshot into the target store,
// establishing the referential integrity the live create paths never
// enforced. Stages run in strict order; each stage completes before the
// next begins, so later stages can resolve references against the target
// store itself. Upserts never overwrite, which makes a rerun a no-op.
type ImportService struct {
	users         repositories.UserRepository
	services      repositories.ServiceRepository
	contracts     repositories.ContractRepository
	notifications repositories.NotificationRepository
	reviews       repositories.ReviewRepository
	questions     repositories.QuestionRepository
	logger        zerolog.Logger
}

// NewImportService creates a new import service writing to the given
// repositories.
func NewImportService(
	users repositories.UserRepository,
	services repositories.ServiceRepository,
	contracts repositories.ContractRepository,
	notifications repositories.NotificationRepository,
	reviews repositories.ReviewRepository,
	questions repositories.QuestionRepository,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		users:         users,
		services:      services,
		contracts:     contracts,
		notifications: notifications,
		reviews:       reviews,
		questions:     questions,
		logger:        logger,
	}
}

// Run imports the snapshot. Unresolved references are skipped with a
// warning and the run continues; any storage error aborts the whole run.
func (s *ImportService) Run(ctx context.Context, snap *jsonstore.Snapshot) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, u := range snap.Users {
		created, err := s.users.UpsertByEmail(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Users.Imported++
		} else {
			summary.Users.Existing++
		}
	}

	for _, svc := range snap.Services {
		ok, err := s.userExists(ctx, svc.ProviderID)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Warn().Str("service_id", svc.ID).Str("provider_id", svc.ProviderID).
				Msg("skipping service: provider does not resolve")
			summary.Services.Skipped++
			continue
		}
		created, err := s.services.Upsert(ctx, svc)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Services.Imported++
		} else {
			summary.Services.Existing++
		}
	}

	for _, c := range snap.Contracts {
		svcOK, err := s.serviceExists(ctx, c.ServiceID)
		if err != nil {
			return nil, err
		}
		clientOK, err := s.userExists(ctx, c.ClientID)
		if err != nil {
			return nil, err
		}
		providerOK, err := s.userExists(ctx, c.ProviderID)
		if err != nil {
			return nil, err
		}
		if !svcOK || !clientOK || !providerOK {
			s.logger.Warn().Str("contract_id", c.ID).
				Msg("skipping contract: reference does not resolve")
			summary.Contracts.Skipped++
			continue
		}
		created, err := s.contracts.Upsert(ctx, c)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Contracts.Imported++
		} else {
			summary.Contracts.Existing++
		}
	}

	for _, n := range snap.Notifications {
		ok, err := s.userExists(ctx, n.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Warn().Str("notification_id", n.ID).Str("user_id", n.UserID).
				Msg("skipping notification: recipient does not resolve")
			summary.Notifications.Skipped++
			continue
		}
		created, err := s.notifications.Upsert(ctx, n)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Notifications.Imported++
		} else {
			summary.Notifications.Existing++
		}
	}

	for _, r := range snap.Reviews {
		svcOK, err := s.serviceExists(ctx, r.ServiceID)
		if err != nil {
			return nil, err
		}
		authorOK, err := s.userExists(ctx, r.AuthorID)
		if err != nil {
			return nil, err
		}
		if !svcOK || !authorOK {
			s.logger.Warn().Str("review_id", r.ID).
				Msg("skipping review: reference does not resolve")
			summary.Reviews.Skipped++
			continue
		}
		created, err := s.reviews.Upsert(ctx, r)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Reviews.Imported++
		} else {
			summary.Reviews.Existing++
		}
	}

	for _, q := range snap.Questions {
		svcOK, err := s.serviceExists(ctx, q.ServiceID)
		if err != nil {
			return nil, err
		}
		userOK, err := s.userExists(ctx, q.UserID)
		if err != nil {
			return nil, err
		}
		if !svcOK || !userOK {
			s.logger.Warn().Str("question_id", q.ID).
				Msg("skipping question: reference does not resolve")
			summary.Questions.Skipped++
			continue
		}
		created, err := s.questions.Upsert(ctx, q)
		if err != nil {
			return nil, err
		}
		if created {
			summary.Questions.Imported++
		} else {
			summary.Questions.Existing++
		}
	}

	return summary, nil
}

func (s *ImportService) userExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	_, err := s.users.GetByID(ctx, id)
	return existsFromErr(err)
}

func (s *ImportService) serviceExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	_, err := s.services.GetByID(ctx, id)
	return existsFromErr(err)
}
