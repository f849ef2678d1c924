package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fiwa/internal/core"
	"fiwa/internal/storage"
)

const testSalt = "test_salt"

// newTestServices wires the full service stack over a throwaway
// database file. The store is returned too so tests can plant rows the
// services would never write themselves.
func newTestServices(t *testing.T) (*Services, *storage.Store) {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), "data.sqlite"), nil)
	_, err := store.Initialize(context.Background())
	require.NoError(t, err)
	return New(store, Config{PasswordSalt: testSalt}, nil), store
}

func createUser(t *testing.T, svc *Services, n int) int64 {
	t.Helper()
	id, err := svc.Users.Create(context.Background(), core.NewUser{
		FirstName: "First",
		LastName:  "Last",
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Password:  fmt.Sprintf("pw%d", n),
	})
	require.NoError(t, err)
	return id
}

func createUserWithQuota(t *testing.T, svc *Services, n, maxProjects int) int64 {
	t.Helper()
	id, err := svc.Users.Create(context.Background(), core.NewUser{
		FirstName:   "First",
		LastName:    "Last",
		Username:    fmt.Sprintf("user%d", n),
		Email:       fmt.Sprintf("user%d@example.com", n),
		Password:    fmt.Sprintf("pw%d", n),
		MaxProjects: &maxProjects,
	})
	require.NoError(t, err)
	return id
}

func createProject(t *testing.T, svc *Services, ownerID int64, name string) int64 {
	t.Helper()
	id, err := svc.Projects.Create(context.Background(), core.NewProject{
		Name:         name,
		Description:  "about " + name,
		CurrencyMain: "EUR",
	}, ownerID)
	require.NoError(t, err)
	return id
}
