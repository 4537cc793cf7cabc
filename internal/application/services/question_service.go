package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// QuestionService handles public Q&A on service pages.
type QuestionService struct {
	questions     repositories.QuestionRepository
	services      repositories.ServiceRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewQuestionService creates a new question service.
func NewQuestionService(
	questions repositories.QuestionRepository,
	services repositories.ServiceRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *QuestionService {
	return &QuestionService{
		questions:     questions,
		services:      services,
		users:         users,
		notifications: notifications,
	}
}

// AskInput carries a new question on a service.
type AskInput struct {
	ServiceID string `json:"serviceId"`
	UserID    string `json:"userId"`
	Text      string `json:"question"`
}

// Ask stores a question and notifies the provider, best-effort.
func (s *QuestionService) Ask(ctx context.Context, input AskInput) (*entities.Question, error) {
	if input.ServiceID == "" || input.UserID == "" || input.Text == "" {
		return nil, apperrors.NewValidationError("serviceId, userId and question are required")
	}

	question := &entities.Question{
		ServiceID: input.ServiceID,
		UserID:    input.UserID,
		Text:      input.Text,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	if service, err := s.services.GetByID(ctx, input.ServiceID); err == nil {
		userName := "Alguien"
		if user, err := s.users.GetByID(ctx, input.UserID); err == nil {
			userName = user.Name
		}
		notification := &entities.Notification{
			UserID:  service.ProviderID,
			Message: fmt.Sprintf("Nueva pregunta de %s en %q: %s...", userName, service.Title, truncate(input.Text, 30)),
			Type:    entities.NotificationTypeMessage,
			Link:    "/dashboard",
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			log.Warn().Err(err).Str("question_id", question.ID).Msg("failed to notify provider about question")
		}
	}

	return question, nil
}

// Answer sets the answer on a question and notifies the asker,
// best-effort.
func (s *QuestionService) Answer(ctx context.Context, id, answer string) (*entities.Question, error) {
	if id == "" || answer == "" {
		return nil, apperrors.NewValidationError("id and answer are required")
	}

	updated, err := s.questions.Update(ctx, id, repositories.QuestionPatch{Answer: &answer})
	if err != nil {
		return nil, err
	}

	notification := &entities.Notification{
		UserID:  updated.UserID,
		Message: fmt.Sprintf("El profesional respondió tu pregunta: %q...", truncate(answer, 30)),
		Type:    entities.NotificationTypeMessage,
		Link:    fmt.Sprintf("/services/%s", updated.ServiceID),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Str("question_id", id).Msg("failed to notify asker about answer")
	}

	return updated, nil
}

// ListByService returns the questions of one service, enriched and newest
// first.
func (s *QuestionService) ListByService(ctx context.Context, serviceID string) ([]*entities.QuestionView, error) {
	if serviceID == "" {
		return nil, apperrors.NewValidationError("serviceId is required")
	}
	questions, err := s.questions.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, questions)
}

// ListByProvider returns the questions across all the provider's
// services, enriched and newest first.
func (s *QuestionService) ListByProvider(ctx context.Context, providerID string) ([]*entities.QuestionView, error) {
	if providerID == "" {
		return nil, apperrors.NewValidationError("providerId is required")
	}

	listings, err := s.services.List(ctx, repositories.ServiceFilter{ProviderID: providerID})
	if err != nil {
		return nil, err
	}

	questions := []*entities.Question{}
	for _, listing := range listings {
		qs, err := s.questions.ListByService(ctx, listing.ID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, qs...)
	}
	return s.enrich(ctx, questions)
}

func (s *QuestionService) enrich(ctx context.Context, questions []*entities.Question) ([]*entities.QuestionView, error) {
	out := make([]*entities.QuestionView, 0, len(questions))
	for _, q := range questions {
		view := &entities.QuestionView{
			Question:     *q,
			UserName:     "Usuario",
			ServiceTitle: "Servicio",
		}
		if user, err := s.users.GetByID(ctx, q.UserID); err == nil {
			view.UserName = user.Name
		}
		if service, err := s.services.GetByID(ctx, q.ServiceID); err == nil {
			view.ServiceTitle = service.Title
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
