package importer

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/layout"
	"github.com/ajitpratap0/vrem/pkg/logger"
	"github.com/ajitpratap0/vrem/pkg/merge"
	"github.com/ajitpratap0/vrem/pkg/metrics"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/observability"
)

// Sidecar file names
const (
	RoomConfigFile = "room-config.json"
	WallConfigFile = "wall-config.json"
)

// Defaults applied by New to zero Options fields
const (
	DefaultReservedPrefix = "__"
	DefaultName           = "default-name"
)

// DefaultExtensions lists the image types imported as exhibits
var DefaultExtensions = []string{"png", "jpg", "jpeg"}

// Options configures an Importer
type Options struct {
	// Name and Description of the resulting exhibition
	Name        string
	Description string

	// ReservedPrefix excludes room directories starting with it
	ReservedPrefix string

	// Extensions are matched case-insensitively, without the dot
	Extensions []string

	// Reference, if set, fills blank exhibit names and descriptions
	Reference *models.Exhibition

	// Prober reads image dimensions. Defaults to HeaderProber.
	Prober ImageProber

	// Metrics may be nil
	Metrics *metrics.ImportCollector
}

// Stats summarizes one import run
type Stats struct {
	Rooms           int           `json:"rooms"`
	Walls           int           `json:"walls"`
	Exhibits        int           `json:"exhibits"`
	SkippedRooms    int           `json:"skipped_rooms"`
	SkippedExhibits int           `json:"skipped_exhibits"`
	Duration        time.Duration `json:"duration"`
}

// Importer reads exhibitions from folder trees. It is not safe for
// concurrent use.
type Importer struct {
	opts       Options
	extensions map[string]struct{}
	logger     *zap.Logger
	stats      Stats
}

// New creates an Importer
func New(opts Options, log *zap.Logger) *Importer {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.ReservedPrefix == "" {
		opts.ReservedPrefix = DefaultReservedPrefix
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Prober == nil {
		opts.Prober = HeaderProber{}
	}
	if log == nil {
		log = logger.Get()
	}

	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &Importer{
		opts:       opts,
		extensions: extensions,
		logger:     log.With(zap.String("component", "importer")),
	}
}

// Stats returns the statistics of the last Import
func (im *Importer) Stats() Stats {
	return im.stats
}

// Import reads the exhibition rooted at root. Nothing is persisted; a
// returned error means no usable exhibition was produced.
func (im *Importer) Import(ctx context.Context, root string) (_ *models.Exhibition, err error) {
	timer := metrics.NewTimer()
	im.stats = Stats{}

	if _, ok := logger.RunID(ctx); !ok {
		ctx = logger.ContextWithRunID(ctx, uuid.NewString())
	}
	ctx = logger.ContextWithExhibition(ctx, im.opts.Name)
	log := logger.FromContext(ctx, im.logger)

	ctx, span := observability.Start(ctx, "importer.Import", attribute.String("root", root))
	defer func() { observability.End(span, err) }()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid import path").
			WithDetail("path", root)
	}
	if ok, _ := isDir(abs); !ok {
		return nil, errors.New(errors.ErrorTypeValidation, "import path has to point to a folder").
			WithDetail("path", root)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to list exhibition folder").
			WithDetail("path", root)
	}

	log.Info("starting to import exhibition", zap.String("path", abs))

	exhibition := models.NewExhibition(im.opts.Name, im.opts.Description)
	base := filepath.Dir(abs)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "import cancelled")
		}

		dir := filepath.Join(abs, entry.Name())
		if ok, _ := isDir(dir); !ok {
			continue
		}
		if strings.HasPrefix(entry.Name(), im.opts.ReservedPrefix) {
			log.Debug("skipping reserved folder", zap.String("room", entry.Name()))
			im.stats.SkippedRooms++
			im.opts.Metrics.Skipped("room", metrics.SkipReserved)
			continue
		}

		room, err := im.importRoom(ctx, log, base, dir, len(exhibition.Rooms()))
		if err != nil {
			if errors.IsType(err, errors.ErrorTypeFile) {
				log.Warn("skipping room", append([]zap.Field{zap.String("room", entry.Name())}, logger.ErrorFields(err)...)...)
				im.stats.SkippedRooms++
				im.opts.Metrics.Skipped("room", metrics.SkipUnreadable)
				continue
			}
			if IsMalformedSidecar(err) {
				im.opts.Metrics.SidecarError()
			}
			return nil, err
		}

		if !exhibition.AddRoom(room) {
			log.Warn("ignoring duplicate room", zap.String("room", room.Text))
			continue
		}
		im.count(room)
	}

	im.stats.Duration = timer.Stop()
	im.opts.Metrics.ObserveDuration(im.stats.Duration)

	log.Info("imported exhibition",
		zap.Int("rooms", im.stats.Rooms),
		zap.Int("walls", im.stats.Walls),
		zap.Int("exhibits", im.stats.Exhibits),
		zap.Int("skipped_rooms", im.stats.SkippedRooms),
		zap.Int("skipped_exhibits", im.stats.SkippedExhibits),
		zap.Duration("duration", im.stats.Duration))

	return exhibition, nil
}

func (im *Importer) count(room *models.Room) {
	im.stats.Rooms++
	im.opts.Metrics.RoomImported()
	for range room.Walls() {
		im.stats.Walls++
		im.opts.Metrics.WallImported()
	}
	for _, e := range room.AllExhibits() {
		im.stats.Exhibits++
		im.opts.Metrics.ExhibitImported(string(e.Type))
	}
}

// importRoom reads one room directory. siblings is the number of rooms
// imported before it.
func (im *Importer) importRoom(ctx context.Context, log *zap.Logger, base, dir string, siblings int) (_ *models.Room, err error) {
	name := filepath.Base(dir)
	ctx, span := observability.Start(ctx, "importer.room", attribute.String("room", name))
	defer func() { observability.End(span, err) }()

	log = log.With(zap.String("room", name))
	log.Info("importing room")

	room, err := im.loadRoom(dir)
	if err != nil {
		return nil, err
	}

	walls, err := wallDirs(dir)
	if err != nil {
		return nil, err
	}
	for i, wallDir := range walls {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "import cancelled")
		}
		wall, err := im.importWall(log, base, i, wallDir)
		if err != nil {
			return nil, err
		}
		room.AddWall(wall)
	}

	if room.Position == nil || room.Position.IsUnset() {
		room.Position = layout.RoomPosition(siblings).Ptr()
	}
	span.SetAttributes(attribute.Int("walls", len(walls)))
	return room, nil
}

// loadRoom reads the room sidecar or creates an untextured room
func (im *Importer) loadRoom(dir string) (*models.Room, error) {
	name := filepath.Base(dir)
	path := filepath.Join(dir, RoomConfigFile)

	var cfg roomConfig
	found, err := readSidecar(path, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		room := models.NewRoom(name, models.TextureNone, models.TextureNone)
		room.Position = models.Origin.Ptr()
		return room, nil
	}

	room, err := cfg.toRoom(name)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeValidation) {
			return nil, err
		}
		return nil, sidecarError(path, err)
	}
	return room, nil
}

// wallDirs returns the wall directories 0, 1, 2, ... of a room up to the
// first missing index. Directories after a gap are never looked at.
func wallDirs(roomDir string) ([]string, error) {
	dirs := make([]string, 0, 4)
	for i := 0; ; i++ {
		dir := filepath.Join(roomDir, strconv.Itoa(i))
		ok, err := isDir(dir)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to probe wall folder").
				WithDetail("path", dir)
		}
		if !ok {
			return dirs, nil
		}
		dirs = append(dirs, dir)
	}
}

// isDir reports whether path is a directory, following symlinks. A missing
// path is not an error.
func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (im *Importer) allowed(ext string) bool {
	_, ok := im.extensions[strings.ToLower(ext)]
	return ok
}

// importWall reads one wall directory and the exhibits in it
func (im *Importer) importWall(log *zap.Logger, base string, index int, dir string) (*models.Wall, error) {
	number := strconv.Itoa(index)
	log = log.With(zap.String("wall", number))

	var cfg wallConfig
	found, err := readSidecar(filepath.Join(dir, WallConfigFile), &cfg)
	if err != nil {
		return nil, err
	}
	var wall *models.Wall
	if found {
		if wall, err = cfg.toWall(number); err != nil {
			if errors.IsType(err, errors.ErrorTypeValidation) {
				return nil, err
			}
			return nil, sidecarError(filepath.Join(dir, WallConfigFile), err)
		}
	} else {
		wall = models.NewTexturedWall(number, models.TextureNone)
		log.Debug("created wall without wall config")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to list wall folder").
			WithDetail("path", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(entry.Name()), ".")
		if ext == "" {
			log.Debug("ignoring file without extension", zap.String("file", entry.Name()))
			continue
		}
		if !im.allowed(ext) {
			if !strings.EqualFold(ext, "json") {
				log.Debug("ignoring file", zap.String("file", entry.Name()), zap.String("extension", ext))
				im.opts.Metrics.Skipped("exhibit", metrics.SkipWrongFormat)
			}
			continue
		}

		exhibit, ok, err := im.importExhibit(log, base, filepath.Join(dir, entry.Name()), wall.Exhibits())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, err := wall.PlaceExhibit(exhibit); err != nil {
			return nil, err
		}
	}
	return wall, nil
}

// importExhibit builds the exhibit for one image file. It reports false
// when the image cannot be read.
func (im *Importer) importExhibit(log *zap.Logger, base, file string, siblings []models.Exhibit) (models.Exhibit, bool, error) {
	name := filepath.Base(file)
	sidecar := filepath.Join(filepath.Dir(file), strings.TrimSuffix(name, filepath.Ext(name))+".json")

	var cfg exhibitConfig
	found, err := readSidecar(sidecar, &cfg)
	if err != nil {
		return models.Exhibit{}, false, err
	}
	exhibit := models.Exhibit{Type: models.ExhibitTypeImage}
	if found {
		if exhibit, err = cfg.toExhibit(); err != nil {
			return models.Exhibit{}, false, sidecarError(sidecar, err)
		}
	}

	rel, err := filepath.Rel(base, file)
	if err != nil {
		return models.Exhibit{}, false, errors.Wrap(err, errors.ErrorTypeFile, "failed to resolve exhibit path").
			WithDetail("path", file)
	}
	exhibit.Path = models.NormalizePath(filepath.ToSlash(rel))

	width, height, err := im.opts.Prober.Dimensions(file)
	if err != nil {
		log.Warn("skipping unreadable image", append([]zap.Field{zap.String("file", name)}, logger.ErrorFields(err)...)...)
		im.stats.SkippedExhibits++
		im.opts.Metrics.Skipped("exhibit", metrics.SkipUnreadable)
		return models.Exhibit{}, false, nil
	}

	if exhibit.Size.IsUnset() {
		exhibit.Size = layout.ImageSize(width, height)
	}
	if exhibit.Position.IsUnset() {
		exhibit.Position = layout.ExhibitPosition(exhibit.Size, siblings)
	}
	if merge.FromReference(im.opts.Reference, &exhibit) {
		log.Debug("merged exhibit with reference", zap.String("path", exhibit.Path))
	}
	return exhibit, true, nil
}
