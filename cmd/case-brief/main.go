package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"juriscrm/config"
	"juriscrm/models"
	"juriscrm/repository"
	"juriscrm/service"
	"juriscrm/storage"

	"github.com/joho/godotenv"
)

// Generates an AI brief for one case: a prose summary stored on the case
// plus suggested next tasks printed for review. Usage: case-brief <caseNumber>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s <caseNumber>", os.Args[0])
	}
	caseNumber := os.Args[1]

	cfg, err := config.Load(os.Getenv("JURISCRM_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := storage.NewStorage(cfg.StorageConfig())
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	ctx := context.Background()
	db, err := repository.NewDatabase(ctx, store)
	if err != nil {
		log.Fatal("Failed to load snapshot:", err)
	}

	caseRepo := repository.NewCaseRepository(db)
	clientRepo := repository.NewClientRepository(db)

	kase, found := findCase(ctx, caseRepo, caseNumber)
	if !found {
		log.Fatalf("No case with number %s", caseNumber)
	}
	client, err := clientRepo.GetByID(ctx, kase.ClientID)
	if err != nil {
		log.Fatalf("Failed to load client for case %s: %v", caseNumber, err)
	}

	geminiClient, err := service.NewGeminiClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}
	defer geminiClient.Close()

	opts := []service.AIServiceOption{service.AIWithClient(geminiClient)}
	if cfg.Gemini.Model != "" {
		opts = append(opts, service.AIWithModel(cfg.Gemini.Model))
	}
	ai := service.NewAIService(opts...)

	summary, err := ai.GenerateCaseSummary(ctx, kase, client.Name)
	if err != nil {
		log.Fatal("Failed to generate summary:", err)
	}
	if err := caseRepo.SetAISummary(ctx, kase.ID, summary); err != nil {
		log.Fatal("Failed to store summary:", err)
	}
	fmt.Println(summary)

	if kase.Notes == "" {
		return
	}
	tasks, err := ai.SuggestTasksFromNotes(ctx, kase.Notes)
	if err != nil {
		log.Printf("Warning: task suggestion failed: %v", err)
		return
	}
	for _, t := range tasks {
		if t.DueDate != "" {
			fmt.Printf("- %s (até %s): %s\n", t.Description, t.DueDate, t.Reasoning)
		} else {
			fmt.Printf("- %s: %s\n", t.Description, t.Reasoning)
		}
	}
}

func findCase(ctx context.Context, repo *repository.CaseRepository, caseNumber string) (models.Case, bool) {
	for _, kase := range repo.List(ctx) {
		if kase.CaseNumber == caseNumber {
			return kase, true
		}
	}
	return models.Case{}, false
}
