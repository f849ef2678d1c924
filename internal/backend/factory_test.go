package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiwa/internal/core"
)

func TestTypeIsValid(t *testing.T) {
	assert.True(t, SQLiteBackend.IsValid())
	assert.True(t, APIBackend.IsValid())
	assert.False(t, Type("postgres").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestCreateInvalidType(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.Create(context.Background(), Config{Type: "postgres"})
	assert.Error(t, err)
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	res, err := f.Create(ctx, Config{
		Type:         SQLiteBackend,
		DBPath:       filepath.Join(t.TempDir(), "data.sqlite"),
		PasswordSalt: "salt",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Backend)
	require.NotNil(t, res.Cleanup)
	defer func() { assert.NoError(t, res.Cleanup()) }()

	be := res.Backend
	userID, err := be.Users().Create(ctx, core.NewUser{
		FirstName: "First",
		LastName:  "Last",
		Username:  "user1",
		Email:     "user1@example.com",
		Password:  "pw1",
	})
	require.NoError(t, err)

	sess, err := be.Users().Authenticate(ctx, "user1", "pw1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, userID, sess.UserID)

	info, err := be.Sessions().Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.IsLoggedIn)
}

func TestCreateSQLiteBackendReopens(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data.sqlite")
	cfg := Config{Type: SQLiteBackend, DBPath: dbPath, PasswordSalt: "salt"}

	res, err := f.Create(ctx, cfg)
	require.NoError(t, err)
	_, err = res.Backend.Users().Create(ctx, core.NewUser{
		FirstName: "First", LastName: "Last",
		Username: "user1", Email: "user1@example.com", Password: "pw1",
	})
	require.NoError(t, err)
	require.NoError(t, res.Cleanup())

	// A second factory on the same file sees the existing data.
	res, err = f.Create(ctx, cfg)
	require.NoError(t, err)
	count, err := res.Backend.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateAPIBackendScaffold(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	res, err := f.Create(ctx, Config{Type: APIBackend, BaseURL: "https://fiwa.example.com"})
	require.NoError(t, err)

	be := res.Backend
	_, err = be.Users().Count(ctx)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = be.Sessions().Current(ctx)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = be.Projects().InfoForUser(ctx, 1)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = be.Labels().List(ctx, 1)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = be.Items().ListForProject(ctx, 1)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.False(t, be.Sessions().Logout(ctx, "token"))
}
