package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fiwa/internal/core"
)

// LabelRecord is the insert shape for a label row.
type LabelRecord struct {
	ProjectID   int64
	Name        string
	Description string
	CreatedAt   time.Time
	Composite   []string
	Status      core.LabelStatus
	Type        int
}

// LabelUpdate is a presence-aware partial update for a label row.
type LabelUpdate struct {
	Name        *string
	Description *string
	Composite   *[]string
	Status      *core.LabelStatus
	Type        *int
}

// LabelNameExists reports whether the project already has a label with
// this name. Uniqueness is scoped to the project, never global.
func (s *Store) LabelNameExists(ctx context.Context, projectID int64, name string) (bool, error) {
	var exists bool
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM labels WHERE project_id = ? AND name = ?)`,
			projectID, name)
		return row.Scan(&exists)
	})
	return exists, s.wrap("check label name", err)
}

// InsertLabel stores a new label row and returns its generated id.
func (s *Store) InsertLabel(ctx context.Context, rec LabelRecord) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `
			INSERT INTO labels (name, description, created_at, project_id, composite, label_status, label_type)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.Name, rec.Description, formatTime(rec.CreatedAt), rec.ProjectID,
			encodeStrings(rec.Composite), int(rec.Status), rec.Type)
		if err != nil {
			return mapConstraint(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, s.wrap("create label", err)
}

// GetLabel returns the label row for id, or nil when it does not exist.
func (s *Store) GetLabel(ctx context.Context, labelID int64) (*core.Label, error) {
	var l core.Label
	var createdAt, composite string
	var status int
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT label_id, project_id, name, description, created_at, composite, label_status, label_type
			FROM labels WHERE label_id = ?`, labelID)
		return row.Scan(&l.LabelID, &l.ProjectID, &l.Name, &l.Description,
			&createdAt, &composite, &status, &l.Type)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrap("get label", err)
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, s.wrap("get label", err)
	}
	l.Composite = decodeStrings(composite)
	l.Status = core.LabelStatus(status)
	return &l, nil
}

// UpdateLabel applies the supplied fields to the label row.
func (s *Store) UpdateLabel(ctx context.Context, labelID int64, upd LabelUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Composite != nil {
		sets = append(sets, "composite = ?")
		args = append(args, encodeStrings(*upd.Composite))
	}
	if upd.Status != nil {
		sets = append(sets, "label_status = ?")
		args = append(args, int(*upd.Status))
	}
	if upd.Type != nil {
		sets = append(sets, "label_type = ?")
		args = append(args, *upd.Type)
	}
	if len(sets) == 0 {
		return &core.ValidationError{Field: "label", Reason: "no fields to update"}
	}
	args = append(args, labelID)

	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		query := "UPDATE labels SET " + joinSets(sets) + " WHERE label_id = ?"
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return mapConstraint(err)
		}
		return nil
	})
	return s.wrap("update label", err)
}

// SetLabelStatus flips the lifecycle status without touching the row
// otherwise. Used for soft deletion.
func (s *Store) SetLabelStatus(ctx context.Context, labelID int64, status core.LabelStatus) error {
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`UPDATE labels SET label_status = ? WHERE label_id = ?`, int(status), labelID)
		return err
	})
	return s.wrap("set label status", err)
}

// DeleteLabel physically removes the label row.
func (s *Store) DeleteLabel(ctx context.Context, labelID int64) error {
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `DELETE FROM labels WHERE label_id = ?`, labelID)
		return err
	})
	return s.wrap("delete label", err)
}

// ListLabels returns every label in the project sorted by name.
func (s *Store) ListLabels(ctx context.Context, projectID int64) ([]core.Label, error) {
	var labels []core.Label
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT label_id, project_id, name, description, created_at, composite, label_status, label_type
			FROM labels WHERE project_id = ? ORDER BY name`, projectID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var l core.Label
			var createdAt, composite string
			var status int
			if err := rows.Scan(&l.LabelID, &l.ProjectID, &l.Name, &l.Description,
				&createdAt, &composite, &status, &l.Type); err != nil {
				return err
			}
			if l.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
			l.Composite = decodeStrings(composite)
			l.Status = core.LabelStatus(status)
			labels = append(labels, l)
		}
		return rows.Err()
	})
	return labels, s.wrap("list labels", err)
}
