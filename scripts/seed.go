// Seeds the JSON store with demo marketplace data for local development.
// Run with RESET_DB=true to start from an empty document.
package main

import (
	"context"
	"log"
	"os"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, removing existing store before seeding")
		if err := os.Remove(cfg.Store.JSONPath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove store: %v", err)
		}
	}

	store, err := jsonstore.Open(cfg.Store.JSONPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx := context.Background()
	users := jsonstore.NewUserStore(store)
	services := jsonstore.NewServiceStore(store)
	contracts := jsonstore.NewContractStore(store)
	reviews := jsonstore.NewReviewStore(store)
	questions := jsonstore.NewQuestionStore(store)

	seedUsers := []*entities.User{
		{ID: "user-ana", Name: "Ana López", Email: "ana@example.com", Password: "password123", Role: entities.RoleClient, Location: "Madrid"},
		{ID: "user-marta", Name: "Marta Ruiz", Email: "marta@example.com", Password: "password123", Role: entities.RoleProvider, Category: "hogar", Phone: "600111222"},
		{ID: "user-jorge", Name: "Jorge Pérez", Email: "jorge@example.com", Password: "password123", Role: entities.RoleProvider, Category: "educación"},
	}
	for _, u := range seedUsers {
		if _, err := users.UpsertByEmail(ctx, u); err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	seedServices := []*entities.Service{
		{ID: "svc-fontaneria", Title: "Fontanería a domicilio", Description: "Reparaciones e instalaciones", Category: "hogar", Location: "Madrid", Price: "25 €/h", ProviderID: "user-marta"},
		{ID: "svc-ingles", Title: "Clases de inglés", Description: "Todos los niveles, online o presencial", Category: "educación", Location: "Sevilla", Price: "a convenir", ProviderID: "user-jorge"},
	}
	for _, s := range seedServices {
		if _, err := services.Upsert(ctx, s); err != nil {
			log.Fatalf("Failed to seed service %s: %v", s.ID, err)
		}
	}

	if _, err := contracts.Upsert(ctx, &entities.Contract{
		ID: "contract-demo", ServiceID: "svc-fontaneria", ClientID: "user-ana",
		ProviderID: "user-marta", Status: entities.ContractStatusCompleted,
	}); err != nil {
		log.Fatalf("Failed to seed contract: %v", err)
	}

	if _, err := reviews.Upsert(ctx, &entities.Review{
		ID: "review-demo", ServiceID: "svc-fontaneria", AuthorID: "user-ana",
		Rating: 5, Comment: "Rápida y profesional",
	}); err != nil {
		log.Fatalf("Failed to seed review: %v", err)
	}

	if _, err := questions.Upsert(ctx, &entities.Question{
		ID: "question-demo", ServiceID: "svc-ingles", UserID: "user-ana",
		Text: "¿Das clases los fines de semana?",
	}); err != nil {
		log.Fatalf("Failed to seed question: %v", err)
	}

	log.Printf("Seed complete: store at %s", cfg.Store.JSONPath)
}
