package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

type questionFixture struct {
	svc           *services.QuestionService
	notifications *jsonstore.NotificationStore
	questions     *jsonstore.QuestionStore
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	ctx := context.Background()
	store := newTestStore(t)

	users := jsonstore.NewUserStore(store)
	require.NoError(t, users.Create(ctx, &entities.User{
		ID: "asker-1", Name: "Ana", Email: "ana@example.com",
	}))

	servicesRepo := jsonstore.NewServiceStore(store)
	require.NoError(t, servicesRepo.Create(ctx, &entities.Service{
		ID: "svc-1", Title: "Fontanería", ProviderID: "prov-1",
	}))

	notifications := jsonstore.NewNotificationStore(store)
	questions := jsonstore.NewQuestionStore(store)
	return &questionFixture{
		svc:           services.NewQuestionService(questions, servicesRepo, users, notifications),
		notifications: notifications,
		questions:     questions,
	}
}

func TestQuestionService_AskNotifiesProvider(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	q, err := f.svc.Ask(ctx, services.AskInput{
		ServiceID: "svc-1", UserID: "asker-1", Text: "¿Trabajas los fines de semana?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Empty(t, q.Answer)

	got, err := f.notifications.ListByUser(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `Nueva pregunta de Ana en "Fontanería": ¿Trabajas los fines de semana?...`, got[0].Message)
	assert.Equal(t, entities.NotificationTypeMessage, got[0].Type)
	assert.Equal(t, "/dashboard", got[0].Link)
}

func TestQuestionService_AskTruncatesLongQuestions(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	long := strings.Repeat("ñ", 50)
	_, err := f.svc.Ask(ctx, services.AskInput{ServiceID: "svc-1", UserID: "asker-1", Text: long})
	require.NoError(t, err)

	got, err := f.notifications.ListByUser(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Truncation counts runes, not bytes.
	assert.Contains(t, got[0].Message, strings.Repeat("ñ", 30)+"...")
	assert.NotContains(t, got[0].Message, strings.Repeat("ñ", 31))
}

func TestQuestionService_AskUnknownAskerUsesFallbackName(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	_, err := f.svc.Ask(ctx, services.AskInput{ServiceID: "svc-1", UserID: "ghost", Text: "¿Precio?"})
	require.NoError(t, err)

	got, err := f.notifications.ListByUser(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0].Message, "Nueva pregunta de Alguien en"))
}

func TestQuestionService_AnswerNotifiesAsker(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	q, err := f.svc.Ask(ctx, services.AskInput{
		ServiceID: "svc-1", UserID: "asker-1", Text: "¿Trabajas los fines de semana?",
	})
	require.NoError(t, err)

	answered, err := f.svc.Answer(ctx, q.ID, "Sí, también los sábados")
	require.NoError(t, err)
	assert.Equal(t, "Sí, también los sábados", answered.Answer)

	got, err := f.notifications.ListByUser(ctx, "asker-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `El profesional respondió tu pregunta: "Sí, también los sábados"...`, got[0].Message)
	assert.Equal(t, "/services/svc-1", got[0].Link)
}

func TestQuestionService_AnswerMissingQuestion(t *testing.T) {
	f := newQuestionFixture(t)
	_, err := f.svc.Answer(context.Background(), "missing", "hola")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestQuestionService_ListByServiceEnriches(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	_, err := f.svc.Ask(ctx, services.AskInput{ServiceID: "svc-1", UserID: "asker-1", Text: "¿Precio?"})
	require.NoError(t, err)
	// A question whose asker no longer exists falls back to placeholders.
	require.NoError(t, f.questions.Create(ctx, &entities.Question{
		ServiceID: "svc-1", UserID: "deleted-user", Text: "¿Horario?",
	}))

	views, err := f.svc.ListByService(ctx, "svc-1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first.
	assert.Equal(t, "¿Horario?", views[0].Text)
	assert.Equal(t, "Usuario", views[0].UserName)
	assert.Equal(t, "Fontanería", views[0].ServiceTitle)
	assert.Equal(t, "Ana", views[1].UserName)
}

func TestQuestionService_ListByProvider(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(t)

	_, err := f.svc.Ask(ctx, services.AskInput{ServiceID: "svc-1", UserID: "asker-1", Text: "¿Precio?"})
	require.NoError(t, err)

	views, err := f.svc.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "¿Precio?", views[0].Text)

	empty, err := f.svc.ListByProvider(ctx, "prov-none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
