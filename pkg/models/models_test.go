package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

func image(path string) Exhibit {
	return NewExhibit("", "", path, ExhibitTypeImage, Origin, Origin)
}

func model(path string) Exhibit {
	return NewExhibit("", "", path, ExhibitTypeModel, Origin, Origin)
}

func TestVector3f_Sentinels(t *testing.T) {
	assert.True(t, Origin.IsUnset())
	assert.False(t, Unit.IsUnset())
	assert.True(t, NewVector3f(math.NaN(), 1, 1).IsNaN())
	assert.True(t, NewVector3f(1, math.NaN(), 1).IsUnset())
	assert.False(t, NewVector3f(0, 0, 0.1).IsUnset())
}

func TestNewExhibit_NormalizesPath(t *testing.T) {
	e := NewExhibit("a", "b", `expo\room\0\img.png`, ExhibitTypeImage, Origin, Origin)
	assert.Equal(t, "expo/room/0/img.png", e.Path)
}

func TestParseExhibitType(t *testing.T) {
	typ, err := ParseExhibitType("model")
	require.NoError(t, err)
	assert.Equal(t, ExhibitTypeModel, typ)

	_, err = ParseExhibitType("sculpture")
	assert.Error(t, err)
}

func TestWall_PlaceExhibit(t *testing.T) {
	wall := NewTexturedWall("0", TextureNone)

	added, err := wall.PlaceExhibit(image("a.png"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = wall.PlaceExhibit(image("a.png"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, wall.Exhibits(), 1)

	_, err = wall.PlaceExhibit(model("vase.obj"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Len(t, wall.Exhibits(), 1)
}

func TestRoom_PlaceExhibit(t *testing.T) {
	room := NewRoom("hall", DefaultFloorTexture, DefaultCeilingTexture)

	_, err := room.PlaceExhibit(image("a.png"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	added, err := room.PlaceExhibit(model("vase.obj"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = room.PlaceExhibit(model("vase.obj"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, room.Exhibits(), 1)
}

func TestWall_ConstructorsAreExclusive(t *testing.T) {
	colored := NewColoredWall("1", NewVector3f(0.2, 0.3, 0.4))
	assert.Equal(t, TextureNone, colored.Texture)

	textured := NewTexturedWall("2", "MARBLE")
	assert.Equal(t, Unit, textured.Color)
	assert.NotNil(t, textured.Coordinates)
	assert.NotNil(t, textured.Exhibits())
}

func TestRoom_Defaults(t *testing.T) {
	room := NewRoom("hall", "WOOD1", "CONCRETE")
	assert.Equal(t, DefaultRoomHeight, room.Height)
	assert.Equal(t, DefaultCeilingScale, room.CeilingScale)
	assert.Equal(t, KindRoom, room.Kind())
	assert.Empty(t, room.Walls())
	assert.Empty(t, room.Exhibits())
}

func TestExhibition_RejectsStructuralDuplicates(t *testing.T) {
	exhibition := NewExhibition("expo", "")
	assert.False(t, exhibition.ID.IsZero())

	first := NewRoom("hall", "WOOD1", "CONCRETE")
	first.AddWall(NewTexturedWall("0", TextureNone))
	twin := NewRoom("hall", "WOOD1", "CONCRETE")
	twin.AddWall(NewTexturedWall("0", TextureNone))

	assert.True(t, exhibition.AddRoom(first))
	assert.False(t, exhibition.AddRoom(twin))

	other := NewRoom("hall", "WOOD1", "CONCRETE")
	other.Height = 3
	assert.True(t, exhibition.AddRoom(other))
	assert.Len(t, exhibition.Rooms(), 2)

	corridor := NewCorridor("link", "NONE", "NONE", "hall", "annex")
	assert.True(t, exhibition.AddCorridor(corridor))
	assert.False(t, exhibition.AddCorridor(NewCorridor("link", "NONE", "NONE", "hall", "annex")))
	assert.Len(t, exhibition.Corridors(), 1)
}

func TestExhibition_Exhibits(t *testing.T) {
	exhibition := NewExhibition("expo", "")

	room := NewRoom("hall", "WOOD1", "CONCRETE")
	_, err := room.PlaceExhibit(model("vase.obj"))
	require.NoError(t, err)
	wall := NewTexturedWall("0", TextureNone)
	_, err = wall.PlaceExhibit(image("a.png"))
	require.NoError(t, err)
	room.AddWall(wall)
	exhibition.AddRoom(room)

	corridor := NewCorridor("link", "NONE", "NONE")
	north := NewTexturedWall("0", TextureNone)
	_, err = north.PlaceExhibit(image("b.png"))
	require.NoError(t, err)
	corridor.AddWall(north)
	exhibition.AddCorridor(corridor)

	all := exhibition.Exhibits()
	require.Len(t, all, 3)
	assert.Equal(t, "vase.obj", all[0].Path)
	assert.Equal(t, "a.png", all[1].Path)
	assert.Equal(t, "b.png", all[2].Path)

	assert.Len(t, exhibition.ExhibitsOfType(ExhibitTypeImage), 2)
	assert.Len(t, exhibition.ExhibitsOfType(ExhibitTypeModel), 1)

	found, ok := exhibition.FindExhibit("b.png")
	require.True(t, ok)
	assert.Equal(t, ExhibitTypeImage, found.Type)
	_, ok = exhibition.FindExhibit("missing.png")
	assert.False(t, ok)
}

func TestCorridor_Walls(t *testing.T) {
	hall := NewRoom("hall", "WOOD1", "CONCRETE")
	corridor := NewCorridor("link", "NONE", "NONE")
	corridor.Connect(hall)
	corridor.Connect(hall)
	assert.Equal(t, []RoomRef{"hall"}, corridor.Connects)

	_, ok := corridor.North()
	assert.False(t, ok)

	corridor.AddWall(NewTexturedWall("0", TextureNone))
	corridor.AddWall(NewTexturedWall("1", TextureNone))
	corridor.AddWall(NewTexturedWall("2", TextureNone))

	north, ok := corridor.North()
	require.True(t, ok)
	assert.Equal(t, "0", north.Number)
	south, ok := corridor.South()
	require.True(t, ok)
	assert.Equal(t, "1", south.Number)
	assert.Len(t, corridor.Walls(), 3)
	assert.Equal(t, KindCorridor, corridor.Kind())
}
