package services

import (
	"context"
	"strings"
	"time"

	"fiwa/internal/core"
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// LabelService manages project-scoped labels and their tri-state
// lifecycle.
type LabelService struct {
	store *storage.Store
	log   *log.Logger
}

const defaultLabelType = 1

// Create stores a new label in the project. The name must be unique
// within the project; the same name in another project is fine.
func (s *LabelService) Create(ctx context.Context, nl core.NewLabel, projectID int64) (int64, error) {
	if err := nl.Validate(); err != nil {
		return 0, err
	}

	exists, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &core.NotFoundError{Entity: "project", ID: projectID}
	}

	taken, err := s.store.LabelNameExists(ctx, projectID, nl.Name)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, &core.DuplicateError{Field: "label name"}
	}

	rec := storage.LabelRecord{
		ProjectID:   projectID,
		Name:        nl.Name,
		Description: nl.Description,
		CreatedAt:   time.Now(),
		Composite:   nl.Composite,
		Status:      core.LabelStatusActive,
		Type:        defaultLabelType,
	}
	if nl.Status != nil {
		rec.Status = *nl.Status
	}
	if nl.Type != nil {
		rec.Type = *nl.Type
	}

	labelID, err := s.store.InsertLabel(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "label created",
		log.FieldLabelID, labelID, log.FieldProjectID, projectID, "name", rec.Name)
	return labelID, nil
}

// Update applies only the supplied fields to an existing label.
func (s *LabelService) Update(ctx context.Context, labelID int64, patch core.LabelPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return &core.ValidationError{Field: "name", Reason: "cannot be empty"}
	}

	existing, err := s.store.GetLabel(ctx, labelID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &core.NotFoundError{Entity: "label", ID: labelID}
	}

	upd := storage.LabelUpdate{
		Name:        patch.Name,
		Description: patch.Description,
		Composite:   patch.Composite,
		Status:      patch.Status,
		Type:        patch.Type,
	}
	if err := s.store.UpdateLabel(ctx, labelID, upd); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "label updated", log.FieldLabelID, labelID)
	return nil
}

// Delete removes a label. Hard deletion drops the row; soft deletion
// flips the status to "marked for deletion" and keeps the row for
// history.
func (s *LabelService) Delete(ctx context.Context, labelID int64, hard bool) error {
	existing, err := s.store.GetLabel(ctx, labelID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &core.NotFoundError{Entity: "label", ID: labelID}
	}

	if hard {
		if err := s.store.DeleteLabel(ctx, labelID); err != nil {
			return err
		}
	} else {
		if err := s.store.SetLabelStatus(ctx, labelID, core.LabelStatusDeleted); err != nil {
			return err
		}
	}
	s.log.InfoContext(ctx, "label deleted", log.FieldLabelID, labelID, "hard", hard)
	return nil
}

// Get returns a label by id, including soft-deleted ones.
func (s *LabelService) Get(ctx context.Context, labelID int64) (*core.Label, error) {
	lbl, err := s.store.GetLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if lbl == nil {
		return nil, &core.NotFoundError{Entity: "label", ID: labelID}
	}
	return lbl, nil
}

// List returns the project's labels sorted by name.
func (s *LabelService) List(ctx context.Context, projectID int64) ([]core.Label, error) {
	return s.store.ListLabels(ctx, projectID)
}
