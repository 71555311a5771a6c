package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/codec"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/importer"
	"github.com/ajitpratap0/vrem/pkg/json"
	"github.com/ajitpratap0/vrem/pkg/logger"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/store"
)

type importFlags struct {
	path          string
	name          string
	description   string
	clean         bool
	output        string
	dryRun        bool
	referenceFile string
}

// importResult is printed after a successful import
type importResult struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Saved bool           `json:"saved"`
	Stats importer.Stats `json:"stats"`
}

func newImportCmd(c *cli) *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an exhibition from a folder",
		Long: `Import builds an exhibition from a folder. Every sub folder is a room, every
numeric folder inside a room is a wall and every image on a wall becomes an
exhibit. room-config.json, wall-config.json and <image>.json files override
the generated values.

An exhibition with the same name must not exist unless --clean is given, in
which case its curated names and descriptions are carried over before it is
replaced.

Example:
  vrem import --path ./exhibitions/expo --name expo --clean`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runImport(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.path, "path", "p", "", "Exhibition folder (required)")
	_ = cmd.MarkFlagRequired("path")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Exhibition name (defaults to import.default_name)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Exhibition description")
	cmd.Flags().BoolVar(&f.clean, "clean", false, "Replace an existing exhibition with the same name")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Also write the exhibition as extended JSON to this file (- for stdout)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Do not connect to the database")
	cmd.Flags().StringVar(&f.referenceFile, "reference-file", "", "Extended JSON exhibition whose names and descriptions are carried over")

	return cmd
}

func (c *cli) runImport(ctx context.Context, f importFlags) error {
	name := f.name
	if name == "" {
		name = c.cfg.Import.DefaultName
	}
	ctx = logger.ContextWithExhibition(ctx, name)
	log := logger.FromContext(ctx, c.logger)

	serializer := codec.NewSerializer()

	var reference *models.Exhibition
	if f.referenceFile != "" {
		ref, err := readExhibitionFile(serializer, f.referenceFile)
		if err != nil {
			return err
		}
		reference = ref
	}

	build := func(reference *models.Exhibition) (*models.Exhibition, importer.Stats, error) {
		im := importer.New(importer.Options{
			Name:           name,
			Description:    f.description,
			ReservedPrefix: c.cfg.Import.ReservedPrefix,
			Extensions:     c.cfg.Import.Extensions,
			Reference:      reference,
			Metrics:        c.metrics.Import,
		}, c.logger)
		e, err := im.Import(ctx, f.path)
		return e, im.Stats(), err
	}

	result := importResult{Name: name}
	var exhibition *models.Exhibition

	if f.dryRun {
		e, stats, err := build(reference)
		if err != nil {
			return err
		}
		exhibition, result.Stats = e, stats
	} else {
		err := c.withStore(ctx, func(s store.Store) error {
			e, stats, err := importInto(ctx, s, name, f.clean, reference, build, log)
			exhibition, result.Stats = e, stats
			return err
		})
		if err != nil {
			return err
		}
		result.Saved = true
	}
	result.ID = exhibition.ID.Hex()

	if f.output != "" {
		if err := writeExhibition(c, serializer, exhibition, f.output, false); err != nil {
			return err
		}
	}

	log.Info("import finished",
		zap.String("id", result.ID),
		zap.Bool("saved", result.Saved),
		zap.Int("rooms", result.Stats.Rooms),
		zap.Int("exhibits", result.Stats.Exhibits),
		zap.Duration("duration", result.Stats.Duration))

	if f.output == "-" {
		return nil
	}
	return json.MarshalToWriter(c.out, result, "  ")
}

type buildFunc func(reference *models.Exhibition) (*models.Exhibition, importer.Stats, error)

// importInto checks for an existing exhibition, builds the new one and saves
// it. Nothing is deleted or written when the build fails.
func importInto(ctx context.Context, s store.Store, name string, clean bool, reference *models.Exhibition, build buildFunc, log *zap.Logger) (*models.Exhibition, importer.Stats, error) {
	existing, err := s.GetByName(ctx, name)
	switch {
	case err == nil:
		if !clean {
			return nil, importer.Stats{}, errors.New(errors.ErrorTypeConflict,
				"exhibition already exists, use --clean to replace it").WithDetail("name", name)
		}
		if reference == nil {
			reference = existing
		}
		log.Info("replacing existing exhibition", zap.String("id", existing.ID.Hex()))
	case errors.IsType(err, errors.ErrorTypeNotFound):
		existing = nil
	default:
		return nil, importer.Stats{}, err
	}

	e, stats, err := build(reference)
	if err != nil {
		return nil, stats, err
	}

	if existing != nil {
		if _, err := s.DeleteByName(ctx, name); err != nil {
			return nil, stats, err
		}
	}
	if err := s.Save(ctx, e); err != nil {
		return nil, stats, err
	}
	return e, stats, nil
}

func readExhibitionFile(serializer *codec.Serializer, path string) (*models.Exhibition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read exhibition file").
			WithDetail("path", path)
	}
	return serializer.UnmarshalExtJSON(data)
}

// writeExhibition writes e as indented extended JSON to path, or to the
// command output when path is "-"
func writeExhibition(c *cli, serializer *codec.Serializer, e *models.Exhibition, path string, canonical bool) error {
	data, err := serializer.MarshalExtJSON(e, canonical)
	if err != nil {
		return err
	}
	data, err = json.Indent(data, "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to format exhibition")
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write exhibition file").
			WithDetail("path", path)
	}
	c.logger.Info("wrote exhibition", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
