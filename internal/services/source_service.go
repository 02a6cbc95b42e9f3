package services

import (
	"context"
	"fmt"
	"time"

	"question-bank-service/internal/models"
	"question-bank-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SourceService handles source CRUD. Like categories, source mutations do
// not write audit events.
type SourceService struct {
	sources SourceStore
}

func NewSourceService(sources SourceStore) *SourceService {
	return &SourceService{sources: sources}
}

func (s *SourceService) Create(ctx context.Context, input models.SourceInput) (*models.Source, error) {
	name, err := validation.SourceName(input.Name)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := validation.SourceURL(input.URL); err != nil {
		return nil, validationErr(err)
	}
	if err := validation.SourceYear(input.Year); err != nil {
		return nil, validationErr(err)
	}

	now := time.Now().UTC()
	source := &models.Source{
		Name:      name,
		URL:       input.URL,
		Year:      input.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.sources.Insert(ctx, source)
	if err != nil {
		return nil, err
	}

	created, err := s.sources.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("source %s missing after insert", id.Hex())
	}
	return created, nil
}

func (s *SourceService) Get(ctx context.Context, id string) (*models.Source, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	source, err := s.sources.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNotFound
	}
	return source, nil
}

func (s *SourceService) List(ctx context.Context) ([]models.Source, error) {
	return s.sources.FindAll(ctx)
}

func (s *SourceService) Update(ctx context.Context, id string, update models.SourceUpdate) (*models.Source, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Name != nil {
		name, err := validation.SourceName(*update.Name)
		if err != nil {
			return nil, validationErr(err)
		}
		set["name"] = name
	}
	if update.URL != nil {
		if err := validation.SourceURL(*update.URL); err != nil {
			return nil, validationErr(err)
		}
		set["url"] = *update.URL
	}
	if update.Year != nil {
		if err := validation.SourceYear(update.Year); err != nil {
			return nil, validationErr(err)
		}
		set["year"] = *update.Year
	}
	set["updated_at"] = time.Now().UTC()

	updated, err := s.sources.UpdateByID(ctx, oid, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *SourceService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}
	return s.sources.DeleteByID(ctx, oid)
}
