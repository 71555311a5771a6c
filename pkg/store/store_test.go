package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ajitpratap0/vrem/pkg/config"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/testutil"
)

func newExhibition(t *testing.T, name string) *models.Exhibition {
	t.Helper()

	e := models.NewExhibition(name, name+" description")
	room := models.NewRoom("hall", models.DefaultFloorTexture, models.DefaultCeilingTexture)
	wall := models.NewTexturedWall("0", "BRICKS")
	_, err := wall.PlaceExhibit(models.NewExhibit("Sunset", "", name+"/hall/0/sunset.png", models.ExhibitTypeImage,
		models.NewVector3f(1.5, 1.5, 0), models.NewVector3f(2, 1, 0)))
	require.NoError(t, err)
	room.AddWall(wall)
	e.AddRoom(room)
	return e
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	e := newExhibition(t, "expo")

	require.NoError(t, s.Save(ctx, e))

	byName, err := s.GetByName(ctx, "expo")
	require.NoError(t, err)
	assert.True(t, e.Equal(byName), "got %s", byName)
	assert.NotSame(t, e, byName)

	byID, err := s.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, e.Equal(byID))
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetByName(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = s.GetByID(ctx, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	e := newExhibition(t, "expo")
	require.NoError(t, s.Save(ctx, e))

	e.Description = "updated"
	e.AddRoom(models.NewRoom("annex", models.DefaultFloorTexture, models.DefaultCeilingTexture))
	require.NoError(t, s.Save(ctx, e))

	got, err := s.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	assert.Len(t, got.Rooms(), 2)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_DeleteByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, newExhibition(t, "expo")))
	require.NoError(t, s.Save(ctx, newExhibition(t, "expo")))
	require.NoError(t, s.Save(ctx, newExhibition(t, "other")))

	n, err := s.DeleteByName(ctx, "expo")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteByName(ctx, "expo")
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "other", list[0].Name)
}

func TestMemoryStore_ListSortedByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, s.Save(ctx, newExhibition(t, name)))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, sum := range list {
		names = append(names, sum.Name)
		assert.False(t, sum.ID.IsZero())
		assert.Equal(t, sum.Name+" description", sum.Description)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestMemoryStore_GetByNameReturnsFirstSaved(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	first := newExhibition(t, "expo")
	second := newExhibition(t, "expo")
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	got, err := s.GetByName(ctx, "expo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.Save(ctx, newExhibition(t, "expo")), context.Canceled)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConnect_InvalidURI(t *testing.T) {
	cfg := config.NewDefault().Database
	cfg.URI = "not-a-mongo-uri"

	_, err := Connect(context.Background(), cfg, nil, testutil.TestLogger(t))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnection))
}
