package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/vrem/pkg/models"
)

func withWidth(w float64) models.Exhibit {
	return models.NewExhibit("", "", "", models.ExhibitTypeImage, models.Origin, models.NewVector3f(w, 1, 0))
}

func TestRoomPosition(t *testing.T) {
	assert.Equal(t, models.Origin, RoomPosition(0))
	assert.Equal(t, models.NewVector3f(3, 0, 0), RoomPosition(3))
}

func TestExhibitPosition(t *testing.T) {
	widths := []float64{2, 3, 1}
	expected := []float64{1.5, 5.0, 8.0}

	placed := make([]models.Exhibit, 0, len(widths))
	for i, w := range widths {
		size := models.NewVector3f(w, 1, 0)
		pos := ExhibitPosition(size, placed)
		assert.InDelta(t, expected[i], pos.X, 1e-9, "exhibit %d", i)
		assert.Equal(t, DefaultHeight, pos.Y)
		assert.Equal(t, 0.0, pos.Z)
		placed = append(placed, withWidth(w))
	}
}

func TestExhibitPosition_Deterministic(t *testing.T) {
	siblings := []models.Exhibit{withWidth(2), withWidth(2)}
	size := models.NewVector3f(1, 1, 0)
	assert.Equal(t, ExhibitPosition(size, siblings), ExhibitPosition(size, siblings))
}

func TestImageSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		expected      models.Vector3f
	}{
		{"landscape", 400, 200, models.NewVector3f(2, 1, 0)},
		{"portrait", 200, 400, models.NewVector3f(1, 2, 0)},
		{"square", 300, 300, models.NewVector3f(2, 2, 0)},
		{"empty", 0, 300, models.Origin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageSize(tt.width, tt.height)
			assert.InDelta(t, tt.expected.X, got.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, got.Y, 1e-9)
			assert.Equal(t, 0.0, got.Z)
		})
	}
}
