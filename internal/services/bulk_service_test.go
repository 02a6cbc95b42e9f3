package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"question-bank-service/internal/models"
)

func newBulkFixture(maxBatchSize int) (*BulkService, *fakeQuestionStore, *fakeEventStore) {
	questions := newFakeQuestionStore()
	events := &fakeEventStore{}
	service := NewBulkService(questions, NewEventService(events, nil), maxBatchSize)
	return service, questions, events
}

func TestImportIsolatesFailedRows(t *testing.T) {
	service, questions, events := newBulkFixture(100)

	questions.insertErr = func(q *models.Question) error {
		if q.Text == "poison" {
			return fmt.Errorf("write conflict")
		}
		return nil
	}

	items := []models.QuestionInput{
		{Text: "first"},
		{Text: "poison"},
		{Text: "third"},
	}

	result, err := service.Import(context.Background(), items)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 || result.Failed != 1 {
		t.Errorf("imported/failed = %d/%d, want 2/1", result.Imported, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(result.Errors))
	}
	if result.Errors[0].Row != 1 {
		t.Errorf("failed row = %d, want 1", result.Errors[0].Row)
	}
	if logged := events.ofType(models.EventBulkImport); len(logged) != 2 {
		t.Errorf("expected 2 bulk.import events, got %d", len(logged))
	}
}

func TestImportSkipsBusinessValidation(t *testing.T) {
	service, questions, _ := newBulkFixture(100)

	// Single-entity create would reject this; bulk import accepts it.
	items := []models.QuestionInput{{Text: "", CorrectAnswer: "X"}}

	result, err := service.Import(context.Background(), items)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 1 || result.Failed != 0 {
		t.Errorf("imported/failed = %d/%d, want 1/0", result.Imported, result.Failed)
	}
	if len(questions.questions) != 1 {
		t.Errorf("storage holds %d questions, want 1", len(questions.questions))
	}
}

func TestImportRejectsOversizedBatch(t *testing.T) {
	service, _, _ := newBulkFixture(2)

	items := make([]models.QuestionInput, 3)
	_, err := service.Import(context.Background(), items)

	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBulkUpdateRowErrors(t *testing.T) {
	service, questions, events := newBulkFixture(100)

	id, err := questions.Insert(context.Background(), &models.Question{Text: "original"})
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	items := []map[string]any{
		{"id": id.Hex(), "text": "rewritten"},
		{"text": "no id at all"},
		{"id": "not-hex", "text": "bad id"},
		{"id": "68b0c7e2a1b2c3d4e5f60009", "text": "vanished"},
	}

	result, err := service.Update(context.Background(), items)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if result.Updated != 1 || result.Failed != 3 {
		t.Errorf("updated/failed = %d/%d, want 1/3", result.Updated, result.Failed)
	}
	wantRows := map[int]bool{1: true, 2: true, 3: true}
	for _, rowErr := range result.Errors {
		if !wantRows[rowErr.Row] {
			t.Errorf("unexpected failed row %d: %s", rowErr.Row, rowErr.Error)
		}
		delete(wantRows, rowErr.Row)
	}
	if len(wantRows) != 0 {
		t.Errorf("rows missing from error report: %v", wantRows)
	}

	stored, _ := questions.FindByID(context.Background(), id)
	if stored.Text != "rewritten" {
		t.Errorf("stored text = %q, want %q", stored.Text, "rewritten")
	}
	if logged := events.ofType(models.EventQuestionUpdated); len(logged) != 1 {
		t.Errorf("expected 1 question.updated event, got %d", len(logged))
	}
}

func TestBulkDelete(t *testing.T) {
	service, questions, events := newBulkFixture(100)

	id, err := questions.Insert(context.Background(), &models.Question{Text: "doomed"})
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	ids := []string{id.Hex(), "not-hex", "68b0c7e2a1b2c3d4e5f60009"}

	result, err := service.Delete(context.Background(), ids)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if result.Deleted != 1 || result.Failed != 2 {
		t.Errorf("deleted/failed = %d/%d, want 1/2", result.Deleted, result.Failed)
	}
	if len(questions.questions) != 0 {
		t.Errorf("storage still holds %d questions", len(questions.questions))
	}
	if logged := events.ofType(models.EventQuestionDeleted); len(logged) != 1 {
		t.Errorf("expected 1 question.deleted event, got %d", len(logged))
	}
}

func TestExportFilters(t *testing.T) {
	service, questions, _ := newBulkFixture(100)

	for i, categoryID := range []string{"cat-a", "cat-a", "cat-b"} {
		if _, err := questions.Insert(context.Background(), &models.Question{
			Text:       fmt.Sprintf("q%d", i),
			CategoryID: categoryID,
		}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	exported, err := service.Export(context.Background(), BulkExportFilters{CategoryID: "cat-a"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(exported) != 2 {
		t.Errorf("exported %d questions, want 2", len(exported))
	}

	all, err := service.Export(context.Background(), BulkExportFilters{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered export returned %d questions, want 3", len(all))
	}
}
