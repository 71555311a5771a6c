package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/codec"
	"github.com/ajitpratap0/vrem/pkg/config"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/json"
	"github.com/ajitpratap0/vrem/pkg/metrics"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/store"
	"github.com/ajitpratap0/vrem/pkg/testutil"
)

// harness runs commands against one in-memory store
type harness struct {
	t     *testing.T
	store *store.MemoryStore
	opens int
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, store: store.NewMemoryStore()}
}

func (h *harness) open(context.Context, config.DatabaseConfig, *metrics.StoreCollector, *zap.Logger) (store.Store, error) {
	h.opens++
	return h.store, nil
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	args = append(args, "--log-level", "error")
	err := execute(context.Background(), &out, h.open, args)
	return out.String(), err
}

func exhibitionTree(t *testing.T) *testutil.Tree {
	t.Helper()
	tree := testutil.NewTree(t, "expo")
	tree.PNG(400, 200, "hall", "0", "sunset.png")
	tree.JPEG(200, 400, "hall", "1", "portrait.jpg")
	tree.PNG(100, 100, "annex", "0", "square.png")
	return tree
}

func TestImport_Saves(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)

	out, err := h.run("import", "--path", tree.Root, "--name", "expo", "--description", "first")
	require.NoError(t, err)

	var result importResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Saved)
	assert.Equal(t, "expo", result.Name)
	assert.Equal(t, 2, result.Stats.Rooms)
	assert.Equal(t, 3, result.Stats.Exhibits)

	e, err := h.store.GetByName(context.Background(), "expo")
	require.NoError(t, err)
	assert.Equal(t, result.ID, e.ID.Hex())
	assert.Equal(t, "first", e.Description)
	assert.Len(t, e.Exhibits(), 3)
}

func TestImport_DefaultName(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)

	_, err := h.run("import", "--path", tree.Root)
	require.NoError(t, err)

	_, err = h.store.GetByName(context.Background(), "default-name")
	assert.NoError(t, err)
}

func TestImport_ExistingRequiresClean(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)

	_, err := h.run("import", "--path", tree.Root, "--name", "expo")
	require.NoError(t, err)

	_, err = h.run("import", "--path", tree.Root, "--name", "expo")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))

	list, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImport_CleanKeepsCuratedMetadata(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tree := exhibitionTree(t)

	_, err := h.run("import", "--path", tree.Root, "--name", "expo")
	require.NoError(t, err)

	// Curate the stored copy the way an editor would.
	stored, err := h.store.GetByName(ctx, "expo")
	require.NoError(t, err)
	curated := models.NewExhibitionWithID(stored.ID, stored.Name, stored.Description)
	room := models.NewRoom("hall", models.TextureNone, models.TextureNone)
	wall := models.NewTexturedWall("0", models.TextureNone)
	_, err = wall.PlaceExhibit(models.NewExhibit("Evening", "Painted in 1890", "expo/hall/0/sunset.png",
		models.ExhibitTypeImage, models.Origin, models.Origin))
	require.NoError(t, err)
	room.AddWall(wall)
	curated.AddRoom(room)
	require.NoError(t, h.store.Save(ctx, curated))

	_, err = h.run("import", "--path", tree.Root, "--name", "expo", "--clean")
	require.NoError(t, err)

	list, err := h.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, stored.ID, list[0].ID)

	e, err := h.store.GetByName(ctx, "expo")
	require.NoError(t, err)
	assert.Len(t, e.Rooms(), 2)
	exhibit, ok := e.FindExhibit("expo/hall/0/sunset.png")
	require.True(t, ok)
	assert.Equal(t, "Evening", exhibit.Name)
	assert.Equal(t, "Painted in 1890", exhibit.Description)
	assert.NotEqual(t, models.Origin, exhibit.Size)
}

func TestImport_MalformedSidecarWritesNothing(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)
	tree.File(`{"name": `, "hall", "0", "sunset.json")

	_, err := h.run("import", "--path", tree.Root, "--name", "expo")
	require.Error(t, err)
	assert.Equal(t, exitMalformedSidecar, exitCode(err))

	list, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImport_DryRunWithOutput(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)
	output := filepath.Join(t.TempDir(), "expo.json")

	out, err := h.run("import", "--path", tree.Root, "--name", "expo", "--dry-run", "--output", output)
	require.NoError(t, err)
	assert.Zero(t, h.opens)

	var result importResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Saved)

	serializer := codec.NewSerializer()
	e, err := readExhibitionFile(serializer, output)
	require.NoError(t, err)
	assert.Equal(t, result.ID, e.ID.Hex())
	assert.Len(t, e.Rooms(), 2)
}

func TestImport_ReferenceFile(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)

	ref := models.NewExhibition("old", "")
	room := models.NewRoom("annex", models.TextureNone, models.TextureNone)
	wall := models.NewTexturedWall("0", models.TextureNone)
	_, err := wall.PlaceExhibit(models.NewExhibit("Square", "A square", "expo/annex/0/square.png",
		models.ExhibitTypeImage, models.Origin, models.Origin))
	require.NoError(t, err)
	room.AddWall(wall)
	ref.AddRoom(room)

	data, err := codec.NewSerializer().MarshalExtJSON(ref, false)
	require.NoError(t, err)
	refFile := testutil.NewTree(t, "ref").File(string(data), "ref.json")

	_, err = h.run("import", "--path", tree.Root, "--name", "expo", "--reference-file", refFile)
	require.NoError(t, err)

	e, err := h.store.GetByName(context.Background(), "expo")
	require.NoError(t, err)
	exhibit, ok := e.FindExhibit("expo/annex/0/square.png")
	require.True(t, ok)
	assert.Equal(t, "Square", exhibit.Name)
}

func TestStoredExhibitionCommands(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)
	_, err := h.run("import", "--path", tree.Root, "--name", "expo")
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		out, err := h.run("list")
		require.NoError(t, err)
		var list []store.Summary
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "expo", list[0].Name)
	})

	t.Run("show", func(t *testing.T) {
		out, err := h.run("show", "--name", "expo", "--type", "image")
		require.NoError(t, err)
		var v exhibitionView
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.Len(t, v.Rooms, 2)
		assert.Len(t, v.Exhibits, 3)
	})

	t.Run("show by id", func(t *testing.T) {
		e, err := h.store.GetByName(context.Background(), "expo")
		require.NoError(t, err)
		out, err := h.run("show", "--id", e.ID.Hex())
		require.NoError(t, err)
		var v exhibitionView
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.Equal(t, "expo", v.Name)
		assert.Empty(t, v.Exhibits)
	})

	t.Run("show invalid id", func(t *testing.T) {
		_, err := h.run("show", "--id", "nope")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("export", func(t *testing.T) {
		out, err := h.run("export", "--name", "expo")
		require.NoError(t, err)
		e, err := codec.NewSerializer().UnmarshalExtJSON([]byte(out))
		require.NoError(t, err)
		stored, err := h.store.GetByName(context.Background(), "expo")
		require.NoError(t, err)
		assert.True(t, stored.Equal(e))
	})

	t.Run("delete", func(t *testing.T) {
		_, err := h.run("delete", "--name", "expo")
		require.NoError(t, err)

		_, err = h.run("delete", "--name", "expo")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "vrem.yaml")

	_, err := h.run("config", "init", "--file", file, "--db-name", "museum")
	require.NoError(t, err)

	cfg, err := config.Load(file, nil)
	require.NoError(t, err)
	assert.Equal(t, "museum", cfg.Database.Name)

	_, err = h.run("config", "init", "--file", file)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestMetricsFile(t *testing.T) {
	h := newHarness(t)
	tree := exhibitionTree(t)
	file := filepath.Join(t.TempDir(), "vrem.prom")

	_, err := h.run("import", "--path", tree.Root, "--dry-run", "--metrics-file", file)
	require.NoError(t, err)
	assert.FileExists(t, file)
}

func TestVersion(t *testing.T) {
	out, err := newHarness(t).run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "VREM v"+version)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New(errors.ErrorTypeConflict, "exists")))
}
