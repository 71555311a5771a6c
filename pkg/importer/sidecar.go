package importer

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/json"
	"github.com/ajitpratap0/vrem/pkg/models"
)

// ErrMalformedSidecar is the root cause of every error raised for a sidecar
// file that cannot be parsed
var ErrMalformedSidecar = stderrors.New("malformed sidecar")

// roomConfig mirrors the room document without its database-only fields.
// A declared entrypoint is ignored, every room uses models.RoomEntrypoint.
type roomConfig struct {
	Text         *string          `json:"text"`
	Floor        *string          `json:"floor"`
	Ceiling      *string          `json:"ceiling"`
	Height       *float64         `json:"height"`
	CeilingScale *float64         `json:"ceiling_scale"`
	Position     *models.Vector3f `json:"position"`
	Ambient      *string          `json:"ambient"`
	Exhibits     []exhibitConfig  `json:"exhibits"`
}

// toRoom builds the room, naming it after its directory when the sidecar
// has no text
func (c *roomConfig) toRoom(dirName string) (*models.Room, error) {
	text := dirName
	if c.Text != nil && strings.TrimSpace(*c.Text) != "" {
		text = *c.Text
	}
	room := models.NewRoom(text, valueOr(c.Floor, models.DefaultFloorTexture), valueOr(c.Ceiling, models.DefaultCeilingTexture))
	if c.Height != nil {
		room.Height = *c.Height
	}
	if c.CeilingScale != nil {
		room.CeilingScale = *c.CeilingScale
	}
	room.Position = c.Position
	room.Ambient = c.Ambient
	for _, ec := range c.Exhibits {
		e, err := ec.toExhibit()
		if err != nil {
			return nil, err
		}
		if _, err := room.PlaceExhibit(e); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// wallConfig is the wall sidecar. A declared wall number is ignored, walls
// are numbered by their directory.
type wallConfig struct {
	Texture         *string           `json:"texture"`
	Color           *models.Vector3f  `json:"color"`
	WallCoordinates []models.Vector3f `json:"wallCoordinates"`
	Exhibits        []exhibitConfig   `json:"exhibits"`
}

// toWall builds the wall and hangs the images the sidecar declares
func (c *wallConfig) toWall(number string) (*models.Wall, error) {
	var wall *models.Wall
	switch {
	case c.Texture != nil && c.Color != nil:
		wall = models.RestoreWall(number, *c.Texture, *c.Color)
	case c.Color != nil:
		wall = models.NewColoredWall(number, *c.Color)
	default:
		wall = models.NewTexturedWall(number, valueOr(c.Texture, models.TextureNone))
	}
	for _, coordinate := range c.WallCoordinates {
		wall.AddCoordinate(coordinate)
	}
	for _, ec := range c.Exhibits {
		e, err := ec.toExhibit()
		if err != nil {
			return nil, err
		}
		if _, err := wall.PlaceExhibit(e); err != nil {
			return nil, err
		}
	}
	return wall, nil
}

// exhibitConfig is the exhibit sidecar
type exhibitConfig struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Path        string           `json:"path"`
	Type        string           `json:"type"`
	Position    *models.Vector3f `json:"position"`
	Size        *models.Vector3f `json:"size"`
}

func (c *exhibitConfig) toExhibit() (models.Exhibit, error) {
	t := models.ExhibitTypeImage
	if c.Type != "" {
		var err error
		if t, err = models.ParseExhibitType(c.Type); err != nil {
			return models.Exhibit{}, err
		}
	}
	var position, size models.Vector3f
	if c.Position != nil {
		position = *c.Position
	}
	if c.Size != nil {
		size = *c.Size
	}
	return models.NewExhibit(c.Name, c.Description, c.Path, t, position, size), nil
}

// readSidecar parses the JSON file at path into v. It reports false when
// the file does not exist.
func readSidecar(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is built from the import root
	if stderrors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.ErrorTypeFile, "failed to read sidecar").
			WithDetail("path", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, sidecarError(path, err)
	}
	return true, nil
}

func sidecarError(path string, cause error) error {
	return errors.Wrap(fmt.Errorf("%w: %s: %v", ErrMalformedSidecar, path, cause), errors.ErrorTypeSidecar, "failed to parse sidecar").
		WithDetail("path", path)
}

// IsMalformedSidecar reports whether err aborted an import because of a
// sidecar file
func IsMalformedSidecar(err error) bool {
	return errors.Is(err, ErrMalformedSidecar)
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
