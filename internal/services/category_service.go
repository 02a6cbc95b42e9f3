package services

import (
	"context"
	"fmt"
	"time"

	"question-bank-service/internal/models"
	"question-bank-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CategoryService handles category CRUD. Category mutations do not write
// audit events; only question mutations do.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	name, err := validation.CategoryName(input.Name)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := validation.CategoryDescription(input.Description); err != nil {
		return nil, validationErr(err)
	}

	now := time.Now().UTC()
	category := &models.Category{
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.categories.Insert(ctx, category)
	if err != nil {
		return nil, err
	}

	created, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("category %s missing after insert", id.Hex())
	}
	return created, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, update models.CategoryUpdate) (*models.Category, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Name != nil {
		name, err := validation.CategoryName(*update.Name)
		if err != nil {
			return nil, validationErr(err)
		}
		set["name"] = name
	}
	if update.Description != nil {
		if err := validation.CategoryDescription(*update.Description); err != nil {
			return nil, validationErr(err)
		}
		set["description"] = *update.Description
	}
	set["updated_at"] = time.Now().UTC()

	updated, err := s.categories.UpdateByID(ctx, oid, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}
	return s.categories.DeleteByID(ctx, oid)
}
