package core

import (
	"testing"
	"time"
)

func TestNewUserValidate(t *testing.T) {
	valid := NewUser{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "secret",
	}

	tests := []struct {
		name    string
		mutate  func(*NewUser)
		wantErr bool
	}{
		{"valid", func(u *NewUser) {}, false},
		{"missing first name", func(u *NewUser) { u.FirstName = "" }, true},
		{"missing last name", func(u *NewUser) { u.LastName = "" }, true},
		{"missing username", func(u *NewUser) { u.Username = "" }, true},
		{"missing email", func(u *NewUser) { u.Email = "" }, true},
		{"missing password", func(u *NewUser) { u.Password = "" }, true},
		{"whitespace only", func(u *NewUser) { u.Username = "   " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := u.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Fatalf("expected a validation error, got %T", err)
			}
		})
	}
}

func TestNewProjectValidate(t *testing.T) {
	if err := (NewProject{Name: "Trip"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (NewProject{Name: "  "}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestNewItemValidate(t *testing.T) {
	valid := NewItem{
		ProjectID:  1,
		Name:       "groceries",
		Price:      12.5,
		Currency:   "EUR",
		BoughtDate: time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(*NewItem)
		wantErr bool
	}{
		{"valid", func(i *NewItem) {}, false},
		{"missing name", func(i *NewItem) { i.Name = "" }, true},
		{"zero price", func(i *NewItem) { i.Price = 0 }, true},
		{"negative price", func(i *NewItem) { i.Price = -3 }, true},
		{"missing currency", func(i *NewItem) { i.Currency = "" }, true},
		{"missing project", func(i *NewItem) { i.ProjectID = 0 }, true},
		{"missing bought date", func(i *NewItem) { i.BoughtDate = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := valid
			tt.mutate(&i)
			if err := i.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLabelStatusValid(t *testing.T) {
	for _, s := range []LabelStatus{LabelStatusDeleted, LabelStatusDeactivated, LabelStatusActive} {
		if !s.Valid() {
			t.Errorf("status %d should be valid", s)
		}
	}
	for _, s := range []LabelStatus{-1, 3, 42} {
		if s.Valid() {
			t.Errorf("status %d should be invalid", s)
		}
	}
}

func TestNewLabelValidate(t *testing.T) {
	bad := LabelStatus(7)
	if err := (NewLabel{Name: "food"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (NewLabel{Name: ""}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := (NewLabel{Name: "food", Status: &bad}).Validate(); err == nil {
		t.Fatal("expected error for out-of-range status")
	}
}

func TestLabelPatchValidate(t *testing.T) {
	if err := (LabelPatch{}).Validate(); err == nil {
		t.Fatal("expected error for empty patch")
	}
	name := "rent"
	if err := (LabelPatch{Name: &name}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := LabelStatus(5)
	if err := (LabelPatch{Status: &bad}).Validate(); err == nil {
		t.Fatal("expected error for out-of-range status")
	}
}

func TestProjectPatch(t *testing.T) {
	if !(ProjectPatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}
	desc := "shared flat"
	p := ProjectPatch{Description: &desc}
	if p.IsEmpty() {
		t.Fatal("patch with a field should not be empty")
	}
	if !p.TouchesHash() {
		t.Fatal("description is part of the project hash")
	}
	list := []string{"EUR", "USD"}
	q := ProjectPatch{CurrencyList: &list}
	if q.TouchesHash() {
		t.Fatal("currency list is not part of the project hash")
	}
}
