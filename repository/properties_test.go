package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichmentLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	db := s.DB()

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]models.TenancyContract{
		{ID: "tc-old", UserID: "u1", PropertyID: "p1", Status: models.TenancyContractEnded, StartDate: jan},
		{ID: "tc-new", UserID: "u1", PropertyID: "p2", Status: models.TenancyContractActive, StartDate: jun},
	}).Error)
	require.NoError(t, db.Create(&[]models.UserProperty{
		{ID: "up1", UserID: "u1", PropertyID: "p1"},
		{ID: "up2", UserID: "u1", PropertyID: "p2"},
		{ID: "up3", UserID: "u2", PropertyID: "p2"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Job{
		{ID: "j1", AssignedTo: "u1", PropertyID: "p2", Status: models.JobStatusActive},
		{ID: "j2", AssignedTo: "u1", PropertyID: "p2", Status: models.JobStatusCompleted},
		{ID: "j3", AssignedTo: "u2", PropertyID: "p1", Status: models.JobStatusActive},
	}).Error)

	latest, err := s.LatestContracts(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	require.Contains(t, latest, "u1")
	assert.Equal(t, "tc-new", latest["u1"].ID)
	assert.NotContains(t, latest, "u2")

	props, err := s.PropertyCounts(ctx, []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, props["u1"])
	assert.EqualValues(t, 1, props["u2"])
	assert.EqualValues(t, 0, props["u3"])

	jobs, err := s.ActiveJobCounts(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, jobs["u1"])
	assert.EqualValues(t, 1, jobs["u2"])

	active, err := s.ActiveContractsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p2", active[0].PropertyID)

	onP2, err := s.JobsForProperties(ctx, []string{"p2"})
	require.NoError(t, err)
	assert.Len(t, onP2, 2)
}

func TestCompactIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, compactIDs([]string{"a", "", "b", "a"}))
	assert.Empty(t, compactIDs(nil))
}
