package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiwa/internal/core"
)

func TestLabelCreateDefaults(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	projectID := createProject(t, svc, owner, "Trip")

	id, err := svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, projectID)
	require.NoError(t, err)

	l, err := svc.Labels.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "food", l.Name)
	assert.Equal(t, core.LabelStatusActive, l.Status)
	assert.Equal(t, defaultLabelType, l.Type)
	assert.Empty(t, l.Composite)
}

func TestLabelCreateOverrides(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	projectID := createProject(t, svc, owner, "Trip")

	status := core.LabelStatusDeactivated
	labelType := 2
	id, err := svc.Labels.Create(ctx, core.NewLabel{
		Name:      "food",
		Composite: []string{"groceries", "restaurant"},
		Status:    &status,
		Type:      &labelType,
	}, projectID)
	require.NoError(t, err)

	l, err := svc.Labels.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.LabelStatusDeactivated, l.Status)
	assert.Equal(t, 2, l.Type)
	assert.Equal(t, []string{"groceries", "restaurant"}, l.Composite)
}

func TestLabelCreateUnknownProject(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Labels.Create(context.Background(), core.NewLabel{Name: "food"}, 999)
	assert.True(t, core.IsNotFound(err))
}

func TestLabelNameUniquePerProject(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	firstProject := createProject(t, svc, owner, "Trip")
	secondProject := createProject(t, svc, owner, "Flat")

	_, err := svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, firstProject)
	require.NoError(t, err)

	_, err = svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, firstProject)
	require.Error(t, err)
	var dup *core.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "label name", dup.Field)

	// The same name in a different project is fine.
	_, err = svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, secondProject)
	assert.NoError(t, err)
}

func TestLabelUpdate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	projectID := createProject(t, svc, owner, "Trip")
	id, err := svc.Labels.Create(ctx, core.NewLabel{Name: "food", Description: "eating out"}, projectID)
	require.NoError(t, err)

	name := "groceries"
	status := core.LabelStatusDeactivated
	require.NoError(t, svc.Labels.Update(ctx, id, core.LabelPatch{Name: &name, Status: &status}))

	l, err := svc.Labels.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "groceries", l.Name)
	assert.Equal(t, "eating out", l.Description, "untouched fields stay put")
	assert.Equal(t, core.LabelStatusDeactivated, l.Status)
}

func TestLabelUpdateValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	assert.True(t, core.IsValidation(svc.Labels.Update(ctx, 1, core.LabelPatch{})))

	blank := " "
	assert.True(t, core.IsValidation(svc.Labels.Update(ctx, 1, core.LabelPatch{Name: &blank})))

	bad := core.LabelStatus(9)
	assert.True(t, core.IsValidation(svc.Labels.Update(ctx, 1, core.LabelPatch{Status: &bad})))
}

func TestLabelUpdateMissing(t *testing.T) {
	svc, _ := newTestServices(t)
	name := "renamed"
	err := svc.Labels.Update(context.Background(), 999, core.LabelPatch{Name: &name})
	assert.True(t, core.IsNotFound(err))
}

func TestLabelSoftDelete(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	projectID := createProject(t, svc, owner, "Trip")
	id, err := svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, projectID)
	require.NoError(t, err)

	require.NoError(t, svc.Labels.Delete(ctx, id, false))

	l, err := svc.Labels.Get(ctx, id)
	require.NoError(t, err, "soft deletion keeps the row readable")
	assert.Equal(t, core.LabelStatusDeleted, l.Status)

	labels, err := svc.Labels.List(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, labels, 1, "soft-deleted labels still list; callers filter by status")
}

func TestLabelHardDelete(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	owner := createUser(t, svc, 1)
	projectID := createProject(t, svc, owner, "Trip")
	id, err := svc.Labels.Create(ctx, core.NewLabel{Name: "food"}, projectID)
	require.NoError(t, err)

	require.NoError(t, svc.Labels.Delete(ctx, id, true))

	_, err = svc.Labels.Get(ctx, id)
	assert.True(t, core.IsNotFound(err))

	labels, err := svc.Labels.List(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestLabelDeleteMissing(t *testing.T) {
	svc, _ := newTestServices(t)
	assert.True(t, core.IsNotFound(svc.Labels.Delete(context.Background(), 999, true)))
}
