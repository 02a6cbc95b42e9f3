package services

import (
	"context"
	"time"

	"question-bank-service/internal/models"
	"question-bank-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// In-memory store fakes. Filters are matched on the plain equality keys
// the services actually build; operator documents match everything.

type fakeQuestionStore struct {
	questions map[bson.ObjectID]models.Question
	order     []bson.ObjectID
	insertErr func(*models.Question) error
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		questions: make(map[bson.ObjectID]models.Question),
	}
}

func (f *fakeQuestionStore) fieldValue(q models.Question, key string) (string, bool) {
	switch key {
	case "category_id":
		return q.CategoryID, true
	case "source_id":
		return q.SourceID, true
	case "metadata.difficulty":
		return string(q.Metadata.Difficulty), true
	}
	return "", false
}

func (f *fakeQuestionStore) matches(filter bson.M, q models.Question) bool {
	for key, value := range filter {
		want, ok := value.(string)
		if !ok {
			continue
		}
		got, known := f.fieldValue(q, key)
		if known && got != want {
			return false
		}
	}
	return true
}

func (f *fakeQuestionStore) Insert(_ context.Context, question *models.Question) (bson.ObjectID, error) {
	if f.insertErr != nil {
		if err := f.insertErr(question); err != nil {
			return bson.ObjectID{}, err
		}
	}
	id := bson.NewObjectID()
	question.ID = id
	f.questions[id] = *question
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeQuestionStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	return &question, nil
}

func (f *fakeQuestionStore) Find(_ context.Context, filter bson.M, skip, limit int) ([]models.Question, error) {
	var matched []models.Question
	for _, id := range f.order {
		if q, ok := f.questions[id]; ok && f.matches(filter, q) {
			matched = append(matched, q)
		}
	}
	if skip >= len(matched) {
		return []models.Question{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeQuestionStore) FindAll(_ context.Context, filter bson.M) ([]models.Question, error) {
	return f.Find(context.Background(), filter, 0, 0)
}

func (f *fakeQuestionStore) Count(_ context.Context, filter bson.M) (int64, error) {
	var count int64
	for _, id := range f.order {
		if q, ok := f.questions[id]; ok && f.matches(filter, q) {
			count++
		}
	}
	return count, nil
}

func (f *fakeQuestionStore) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M) (*models.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	for key, value := range set {
		switch key {
		case "text":
			question.Text = value.(string)
		case "category_id":
			question.CategoryID = value.(string)
		case "source_id":
			question.SourceID = value.(string)
		case "type":
			question.Type = value.(string)
		case "options":
			question.Options = value.([]string)
		case "correct_answer":
			question.CorrectAnswer = value.(string)
		case "explanation":
			question.Explanation = value.(string)
		case "metadata":
			question.Metadata = value.(models.Metadata)
		case "updated_at":
			question.UpdatedAt = value.(time.Time)
		}
	}
	f.questions[id] = question
	return &question, nil
}

func (f *fakeQuestionStore) DeleteByID(_ context.Context, id bson.ObjectID) (bool, error) {
	if _, ok := f.questions[id]; !ok {
		return false, nil
	}
	delete(f.questions, id)
	return true, nil
}

func (f *fakeQuestionStore) GroupCount(_ context.Context, field string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, id := range f.order {
		q, ok := f.questions[id]
		if !ok {
			continue
		}
		value, known := f.fieldValue(q, field)
		if !known {
			continue
		}
		counts[value]++
	}
	return counts, nil
}

type fakeEventStore struct {
	events    []models.Event
	insertErr error
	lastLimit int
}

func (f *fakeEventStore) Insert(_ context.Context, event *models.Event) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventStore) Find(_ context.Context, filter bson.M, limit int) ([]models.Event, error) {
	f.lastLimit = limit
	var matched []models.Event
	for _, e := range f.events {
		if id, ok := filter["entity_id"].(string); ok && e.EntityID != id {
			continue
		}
		if typ, ok := filter["entity_type"].(string); ok && e.EntityType != typ {
			continue
		}
		matched = append(matched, e)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (f *fakeEventStore) ofType(eventType models.EventType) []models.Event {
	var matched []models.Event
	for _, e := range f.events {
		if e.EventType == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

type fakeIdempotencyStore struct {
	records  map[string]models.IdempotencyRecord
	insertFn func(key string, response bson.M, statusCode int) error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{
		records: make(map[string]models.IdempotencyRecord),
	}
}

func (f *fakeIdempotencyStore) FindByKey(_ context.Context, key string) (*models.IdempotencyRecord, error) {
	record, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeIdempotencyStore) Insert(_ context.Context, key string, response bson.M, statusCode int) error {
	if f.insertFn != nil {
		return f.insertFn(key, response, statusCode)
	}
	if _, exists := f.records[key]; exists {
		return repository.ErrDuplicateKey
	}
	f.records[key] = models.IdempotencyRecord{
		IdempotencyKey: key,
		Response:       response,
		StatusCode:     statusCode,
		CreatedAt:      time.Now().UTC(),
	}
	return nil
}

type fakeBroker struct {
	published  []string
	publishErr error
}

func (f *fakeBroker) Publish(eventType string, _ any) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, eventType)
	return nil
}
