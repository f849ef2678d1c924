package core

import (
	"strings"
	"time"
)

const (
	// DefaultMaxProjects bounds how many projects a user may belong to
	// unless the user row says otherwise.
	DefaultMaxProjects = 3

	// DefaultScope is the capability tag assigned to new users.
	DefaultScope = "user:write"

	// DefaultPermModel is the permission bitstring for a fresh membership.
	DefaultPermModel = "000000"

	// SessionTTL is how long a session stays valid after login.
	SessionTTL = 30 * time.Minute

	// SessionTypeLocal tags sessions created by a local login.
	SessionTypeLocal = "local_login"
)

// LabelStatus is the tri-state label lifecycle.
type LabelStatus int

const (
	LabelStatusDeleted     LabelStatus = 0 // marked for deletion, row kept
	LabelStatusDeactivated LabelStatus = 1
	LabelStatusActive      LabelStatus = 2
)

// Valid reports whether the status is one of the closed set {0,1,2}.
func (s LabelStatus) Valid() bool {
	return s == LabelStatusDeleted || s == LabelStatusDeactivated || s == LabelStatusActive
}

type (
	// User is a stored account. The password hash never leaves the
	// storage layer; reads return User without it.
	User struct {
		UserID           int64
		FirstName        string
		LastName         string
		Username         string
		Email            string
		Birthday         string // YYYY-MM-DD, empty when unknown
		Activated        bool
		IsSuperuser      bool
		Scope            string
		MaxProjects      int
		UniqueIdentifier string
	}

	// NewUser carries the fields for user creation. Optional fields with
	// non-zero defaults use pointers so "not supplied" is distinguishable
	// from an explicit zero.
	NewUser struct {
		FirstName   string
		LastName    string
		Username    string
		Email       string
		Password    string
		Birthday    string
		MaxProjects *int
		IsSuperuser bool
		Scope       *string
		Activated   *bool
	}

	// Session is one login. At most one exists per user.
	Session struct {
		UserID       int64
		SessionUUID  string
		SessionStart time.Time
		SessionType  string
	}

	// SessionInfo is the full logged-in context: the session plus the
	// owning user and every project membership.
	SessionInfo struct {
		Session    Session
		IsLoggedIn bool
		User       User
		Projects   []ProjectInfo
	}

	// Project is a shared expense-tracking group.
	Project struct {
		ProjectID    int64
		Name         string
		Description  string
		CreatedAt    time.Time
		CurrencyMain string // 3-letter code, empty when unset
		CurrencyList []string
		ProjectHash  string
	}

	// NewProject carries the fields for project creation.
	NewProject struct {
		Name         string
		Description  string
		CurrencyMain string
		CurrencyList []string
		CreatedAt    time.Time // zero value means "now"
	}

	// ProjectPatch is a presence-aware partial update. Nil means the
	// field is untouched.
	ProjectPatch struct {
		Name         *string
		Description  *string
		CurrencyMain *string
		CurrencyList *[]string
	}

	// ProjectInfo is one membership row joined with its project.
	ProjectInfo struct {
		Project
		ProjectPrimary bool
		PermModel      string
	}

	// Label is a project-scoped tag with a tri-state lifecycle.
	Label struct {
		LabelID     int64
		ProjectID   int64
		Name        string
		Description string
		CreatedAt   time.Time
		Composite   []string
		Status      LabelStatus
		Type        int
	}

	// NewLabel carries the fields for label creation.
	NewLabel struct {
		Name        string
		Description string
		Composite   []string
		Status      *LabelStatus
		Type        *int
	}

	// LabelPatch is a presence-aware partial update for a label.
	LabelPatch struct {
		Name        *string
		Description *string
		Composite   *[]string
		Status      *LabelStatus
		Type        *int
	}

	// Item is a financial transaction tied to one project, up to three
	// users and zero or more labels.
	Item struct {
		ItemID           int64
		ItemUUID         string
		ProjectID        int64
		Name             string
		Note             string
		Price            float64
		PriceFinal       float64
		Currency         string
		CurrencyFinal    string
		BoughtDate       time.Time
		BoughtByID       int64
		BoughtForID      int64
		AddedByID        int64
		ExchangeRate     float64
		ExchangeRateDate time.Time
		Tags             []int64 // label ids
	}

	// NewItem carries the fields for item creation. ItemUUID may be
	// supplied by the caller (the input form generates one up front);
	// when empty the ledger assigns one.
	NewItem struct {
		ItemUUID         string
		ProjectID        int64
		Name             string
		Note             string
		Price            float64
		PriceFinal       float64
		Currency         string
		CurrencyFinal    string
		BoughtDate       time.Time
		BoughtByID       int64
		BoughtForID      int64
		AddedByID        int64
		ExchangeRate     float64
		ExchangeRateDate time.Time
		Tags             []int64
	}
)

func (u NewUser) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"first_name", u.FirstName},
		{"last_name", u.LastName},
		{"username", u.Username},
		{"email", u.Email},
		{"password", u.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}
	return nil
}

func (p NewProject) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}

// IsEmpty reports whether no field of the patch is set.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.CurrencyMain == nil && p.CurrencyList == nil
}

// TouchesHash reports whether a hashed field (name, description or main
// currency) is part of the patch.
func (p ProjectPatch) TouchesHash() bool {
	return p.Name != nil || p.Description != nil || p.CurrencyMain != nil
}

func (l NewLabel) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if l.Status != nil && !l.Status.Valid() {
		return &ValidationError{Field: "label_status", Reason: "must be 0, 1 or 2"}
	}
	return nil
}

// IsEmpty reports whether no field of the patch is set.
func (p LabelPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Composite == nil &&
		p.Status == nil && p.Type == nil
}

func (p LabelPatch) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Field: "label", Reason: "no fields to update"}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "label_status", Reason: "must be 0, 1 or 2"}
	}
	return nil
}

func (i NewItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if i.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	if strings.TrimSpace(i.Currency) == "" {
		return &ValidationError{Field: "currency", Reason: "required"}
	}
	if i.ProjectID == 0 {
		return &ValidationError{Field: "project_id", Reason: "required"}
	}
	if i.BoughtDate.IsZero() {
		return &ValidationError{Field: "bought_date", Reason: "required"}
	}
	return nil
}
