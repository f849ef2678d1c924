package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fiwa/internal/core"
)

// ProjectRecord is the insert shape for a project row.
type ProjectRecord struct {
	Name         string
	Description  string
	CreatedAt    time.Time
	CurrencyMain string // empty stores NULL
	CurrencyList []string
	ProjectHash  string
}

// ProjectUpdate is a presence-aware partial update with the project hash
// already recomputed by the caller when a hashed field changed.
type ProjectUpdate struct {
	Name         *string
	Description  *string
	CurrencyMain *string
	CurrencyList *[]string
	ProjectHash  *string
}

// CreateProjectWithOwner inserts the project row and the owner's
// membership row in one transaction, so a failed membership insert can
// never leave an orphaned project behind.
func (s *Store) CreateProjectWithOwner(ctx context.Context, rec ProjectRecord, ownerID int64, permModel string, primary bool) (int64, error) {
	var projectID int64
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO projects (name, description, created_at, currency_main, currency_list, project_hash)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.Name, rec.Description, formatTime(rec.CreatedAt),
			nullString(rec.CurrencyMain), encodeStrings(rec.CurrencyList), rec.ProjectHash)
		if err != nil {
			return mapConstraint(err)
		}
		if projectID, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO project_members (user_id, project_id, created_at, project_perm_model, project_primary)
			VALUES (?, ?, ?, ?, ?)`,
			ownerID, projectID, formatTime(time.Now()), permModel, boolInt(primary))
		if err != nil {
			return mapConstraint(err)
		}
		return nil
	})
	return projectID, s.wrap("create project", err)
}

// ProjectExists reports whether a project row exists for id.
func (s *Store) ProjectExists(ctx context.Context, projectID int64) (bool, error) {
	var exists bool
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM projects WHERE project_id = ?)`, projectID)
		return row.Scan(&exists)
	})
	return exists, s.wrap("check project", err)
}

// ProjectHashFields returns the stored values of the fields that feed
// the project hash. found is false when the project does not exist.
func (s *Store) ProjectHashFields(ctx context.Context, projectID int64) (name, description, currencyMain string, found bool, err error) {
	var currency sql.NullString
	err = s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT name, description, currency_main FROM projects WHERE project_id = ?`, projectID)
		return row.Scan(&name, &description, &currency)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", "", false, nil
	}
	if err != nil {
		return "", "", "", false, s.wrap("get project hash fields", err)
	}
	return name, description, currency.String, true, nil
}

// UpdateProject applies the supplied fields to the project row.
func (s *Store) UpdateProject(ctx context.Context, projectID int64, upd ProjectUpdate) error {
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
	if upd.CurrencyMain != nil {
		sets = append(sets, "currency_main = ?")
		args = append(args, nullString(*upd.CurrencyMain))
	}
	if upd.CurrencyList != nil {
		sets = append(sets, "currency_list = ?")
		args = append(args, encodeStrings(*upd.CurrencyList))
	}
	if upd.ProjectHash != nil {
		sets = append(sets, "project_hash = ?")
		args = append(args, *upd.ProjectHash)
	}
	if len(sets) == 0 {
		return &core.ValidationError{Field: "project", Reason: "no fields to update"}
	}
	args = append(args, projectID)

	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		query := "UPDATE projects SET " + joinSets(sets) + " WHERE project_id = ?"
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return mapConstraint(err)
		}
		return nil
	})
	return s.wrap("update project", err)
}

// CountMemberships returns how many projects the user belongs to.
func (s *Store) CountMemberships(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		return db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM project_members WHERE user_id = ?`, userID).Scan(&count)
	})
	return count, s.wrap("count memberships", err)
}

// HasMembership reports whether the user already belongs to the project.
func (s *Store) HasMembership(ctx context.Context, userID, projectID int64) (bool, error) {
	var exists bool
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM project_members WHERE user_id = ? AND project_id = ?)`,
			userID, projectID)
		return row.Scan(&exists)
	})
	return exists, s.wrap("check membership", err)
}

// InsertMember links a user to a project.
func (s *Store) InsertMember(ctx context.Context, projectID, userID int64, permModel string, primary bool) error {
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO project_members (user_id, project_id, created_at, project_perm_model, project_primary)
			VALUES (?, ?, ?, ?, ?)`,
			userID, projectID, formatTime(time.Now()), permModel, boolInt(primary))
		if err != nil {
			return mapConstraint(err)
		}
		return nil
	})
	return s.wrap("add project member", err)
}

// ProjectsForUser returns one row per membership joined with project
// attributes, ordered by project id.
func (s *Store) ProjectsForUser(ctx context.Context, userID int64) ([]core.ProjectInfo, error) {
	var infos []core.ProjectInfo
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT p.project_id, p.name, p.description, p.created_at,
			       p.currency_main, p.currency_list, p.project_hash,
			       pm.project_primary, pm.project_perm_model
			FROM projects p
			JOIN project_members pm ON p.project_id = pm.project_id
			WHERE pm.user_id = ?
			ORDER BY p.project_id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var info core.ProjectInfo
			var createdAt, currencyList string
			var currencyMain sql.NullString
			var primary int
			if err := rows.Scan(&info.ProjectID, &info.Name, &info.Description, &createdAt,
				&currencyMain, &currencyList, &info.ProjectHash, &primary, &info.PermModel); err != nil {
				return err
			}
			if info.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
			info.CurrencyMain = currencyMain.String
			info.CurrencyList = decodeStrings(currencyList)
			info.ProjectPrimary = primary != 0
			infos = append(infos, info)
		}
		return rows.Err()
	})
	return infos, s.wrap("list projects for user", err)
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
