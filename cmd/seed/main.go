package main

import (
	"context"
	"log"
	"time"

	"question-bank-service/internal/config"
	"question-bank-service/internal/database/mongo"
	"question-bank-service/internal/models"
	"question-bank-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Seeds the database with sample master data. Refuses to run against a
// database that already holds questions.
func main() {
	cfg := config.ServiceConfig

	if err := mongo.Init(&cfg.MongoDB, cfg.Idempotency.TTL); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer mongo.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	questionRepo := repository.NewQuestionRepository(mongo.Database, mongo.QuestionsCollection)
	categoryRepo := repository.NewCategoryRepository(mongo.Database, mongo.CategoriesCollection)
	sourceRepo := repository.NewSourceRepository(mongo.Database, mongo.SourcesCollection)

	count, err := questionRepo.Count(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to check questions collection: %v", err)
	}
	if count > 0 {
		log.Printf("Questions collection already holds %d documents, skipping seed", count)
		return
	}

	now := time.Now().UTC()

	categories := []models.Category{
		{Name: "Mathematics", Description: "Math questions", CreatedAt: now, UpdatedAt: now},
		{Name: "Science", Description: "Science questions", CreatedAt: now, UpdatedAt: now},
		{Name: "History", Description: "History questions", CreatedAt: now, UpdatedAt: now},
	}
	categoryIDs := make([]string, 0, len(categories))
	for i := range categories {
		id, err := categoryRepo.Insert(ctx, &categories[i])
		if err != nil {
			log.Fatalf("Failed to insert category %q: %v", categories[i].Name, err)
		}
		categoryIDs = append(categoryIDs, id.Hex())
	}
	log.Printf("Inserted %d categories", len(categories))

	year2023, year2022 := 2023, 2022
	sources := []models.Source{
		{Name: "JEE Advanced", Year: &year2023, CreatedAt: now, UpdatedAt: now},
		{Name: "UPSC", Year: &year2023, CreatedAt: now, UpdatedAt: now},
		{Name: "IIT", Year: &year2022, CreatedAt: now, UpdatedAt: now},
	}
	sourceIDs := make([]string, 0, len(sources))
	for i := range sources {
		id, err := sourceRepo.Insert(ctx, &sources[i])
		if err != nil {
			log.Fatalf("Failed to insert source %q: %v", sources[i].Name, err)
		}
		sourceIDs = append(sourceIDs, id.Hex())
	}
	log.Printf("Inserted %d sources", len(sources))

	questions := []models.Question{
		{
			Text:          "What is 2+2?",
			CategoryID:    categoryIDs[0],
			SourceID:      sourceIDs[0],
			Type:          models.DefaultQuestionType,
			Options:       []string{"3", "4", "5", "6"},
			CorrectAnswer: "4",
			Metadata: models.Metadata{
				Tags:       []string{"arithmetic"},
				Difficulty: models.DifficultyEasy,
				IsActive:   true,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Text:          "What is the capital of France?",
			CategoryID:    categoryIDs[2],
			SourceID:      sourceIDs[1],
			Type:          models.DefaultQuestionType,
			Options:       []string{"London", "Paris", "Berlin", "Madrid"},
			CorrectAnswer: "Paris",
			Metadata: models.Metadata{
				Tags:       []string{"geography"},
				Difficulty: models.DifficultyEasy,
				IsActive:   true,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for i := range questions {
		if _, err := questionRepo.Insert(ctx, &questions[i]); err != nil {
			log.Fatalf("Failed to insert question %d: %v", i, err)
		}
	}
	log.Printf("Inserted %d questions", len(questions))

	log.Println("Database seeding completed")
}
