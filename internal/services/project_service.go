package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"fiwa/internal/core"
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// ProjectService creates, updates and reads projects and their
// memberships, and enforces the per-user project quota.
type ProjectService struct {
	store *storage.Store
	users *UserService
	log   *log.Logger
}

// projectHash fingerprints the fields that make two projects "similar".
// Collisions on it surface as duplicate-project errors.
func projectHash(name, description, currencyMain string) string {
	sum := sha256.Sum256([]byte(name + "|" + description + "|" + currencyMain))
	return hex.EncodeToString(sum[:])
}

// Create inserts the project and the owner's membership as one atomic
// unit. The owner's first project becomes their primary one. Exceeding
// the owner's max_projects fails with a quota error naming the limit.
func (s *ProjectService) Create(ctx context.Context, np core.NewProject, ownerID int64) (int64, error) {
	if err := np.Validate(); err != nil {
		return 0, err
	}

	exists, err := s.store.UserExists(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &core.NotFoundError{Entity: "user", ID: ownerID}
	}

	max, err := s.users.MaxProjects(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	count, err := s.store.CountMemberships(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if count >= max {
		return 0, &core.QuotaError{Resource: "projects", Limit: max}
	}

	createdAt := np.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	rec := storage.ProjectRecord{
		Name:         np.Name,
		Description:  np.Description,
		CreatedAt:    createdAt,
		CurrencyMain: np.CurrencyMain,
		CurrencyList: np.CurrencyList,
		ProjectHash:  projectHash(np.Name, np.Description, np.CurrencyMain),
	}

	// The first project the user joins is their primary one.
	primary := count == 0
	projectID, err := s.store.CreateProjectWithOwner(ctx, rec, ownerID, core.DefaultPermModel, primary)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "project created",
		log.FieldProjectID, projectID, log.FieldUserID, ownerID, "primary", primary)
	return projectID, nil
}

// Update applies a partial update. When a hashed field (name,
// description, main currency) is touched the project hash is recomputed
// from the new values where supplied and the stored values otherwise.
func (s *ProjectService) Update(ctx context.Context, projectID int64, patch core.ProjectPatch) error {
	if patch.IsEmpty() {
		return &core.ValidationError{Field: "project", Reason: "no fields to update"}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return &core.ValidationError{Field: "name", Reason: "cannot be empty"}
	}

	curName, curDesc, curCurrency, found, err := s.store.ProjectHashFields(ctx, projectID)
	if err != nil {
		return err
	}
	if !found {
		return &core.NotFoundError{Entity: "project", ID: projectID}
	}

	upd := storage.ProjectUpdate{
		Name:         patch.Name,
		Description:  patch.Description,
		CurrencyMain: patch.CurrencyMain,
		CurrencyList: patch.CurrencyList,
	}
	if patch.TouchesHash() {
		hash := projectHash(
			valueOr(patch.Name, curName),
			valueOr(patch.Description, curDesc),
			valueOr(patch.CurrencyMain, curCurrency),
		)
		upd.ProjectHash = &hash
	}

	if err := s.store.UpdateProject(ctx, projectID, upd); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "project updated", log.FieldProjectID, projectID)
	return nil
}

// AddMember links an existing user to an existing project. Duplicate
// membership is rejected.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID int64, permModel string, primary bool) error {
	exists, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return &core.NotFoundError{Entity: "project", ID: projectID}
	}
	exists, err = s.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return &core.NotFoundError{Entity: "user", ID: userID}
	}
	member, err := s.store.HasMembership(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if member {
		return &core.DuplicateError{Field: "membership"}
	}

	if permModel == "" {
		permModel = core.DefaultPermModel
	}
	if err := s.store.InsertMember(ctx, projectID, userID, permModel, primary); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "member added", log.FieldProjectID, projectID, log.FieldUserID, userID)
	return nil
}

// InfoForUser returns one entry per membership, joined with project
// attributes.
func (s *ProjectService) InfoForUser(ctx context.Context, userID int64) ([]core.ProjectInfo, error) {
	return s.store.ProjectsForUser(ctx, userID)
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
