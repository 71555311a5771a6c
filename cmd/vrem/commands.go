package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/codec"
	"github.com/ajitpratap0/vrem/pkg/config"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/json"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/store"
)

// selector picks one stored exhibition by name or id
type selector struct {
	name string
	id   string
}

func (sel *selector) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sel.name, "name", "n", "", "Exhibition name")
	cmd.Flags().StringVar(&sel.id, "id", "", "Exhibition id (hex ObjectID)")
	cmd.MarkFlagsMutuallyExclusive("name", "id")
}

func (sel *selector) load(ctx context.Context, s store.Store) (*models.Exhibition, error) {
	if sel.id == "" && sel.name == "" {
		return nil, errors.New(errors.ErrorTypeValidation, "one of --name or --id is required")
	}
	if sel.id == "" {
		return s.GetByName(ctx, sel.name)
	}
	id, err := primitive.ObjectIDFromHex(sel.id)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid exhibition id").
			WithDetail("id", sel.id)
	}
	return s.GetByID(ctx, id)
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		sel       selector
		output    string
		canonical bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored exhibition as extended JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				e, err := sel.load(ctx, s)
				if err != nil {
					return err
				}
				return writeExhibition(c, codec.NewSerializer(), e, output, canonical)
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Use canonical instead of relaxed extended JSON")
	return cmd
}

// exhibitionView is the printed form of a stored exhibition
type exhibitionView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Rooms       []areaView       `json:"rooms"`
	Corridors   []areaView       `json:"corridors"`
	Exhibits    []models.Exhibit `json:"exhibits,omitempty"`
}

type areaView struct {
	Text     string   `json:"text"`
	Walls    int      `json:"walls"`
	Exhibits int      `json:"exhibits"`
	Connects []string `json:"connects,omitempty"`
}

func newExhibitionView(e *models.Exhibition) exhibitionView {
	v := exhibitionView{
		ID:          e.ID.Hex(),
		Name:        e.Name,
		Description: e.Description,
		Rooms:       make([]areaView, 0, len(e.Rooms())),
		Corridors:   make([]areaView, 0, len(e.Corridors())),
	}
	for _, r := range e.Rooms() {
		v.Rooms = append(v.Rooms, areaView{Text: r.Text, Walls: len(r.Walls()), Exhibits: len(r.AllExhibits())})
	}
	for _, cr := range e.Corridors() {
		connects := make([]string, 0, len(cr.Connects))
		for _, ref := range cr.Connects {
			connects = append(connects, string(ref))
		}
		v.Corridors = append(v.Corridors, areaView{
			Text:     cr.Text,
			Walls:    len(cr.Walls()),
			Exhibits: len(cr.AllExhibits()),
			Connects: connects,
		})
	}
	return v
}

func newShowCmd(c *cli) *cobra.Command {
	var (
		sel      selector
		exhibits bool
		typ      string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the structure of a stored exhibition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter models.ExhibitType
			if typ != "" {
				t, err := models.ParseExhibitType(typ)
				if err != nil {
					return errors.Wrap(err, errors.ErrorTypeValidation, "invalid --type")
				}
				filter, exhibits = t, true
			}

			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				e, err := sel.load(ctx, s)
				if err != nil {
					return err
				}
				v := newExhibitionView(e)
				switch {
				case filter != "":
					v.Exhibits = e.ExhibitsOfType(filter)
				case exhibits:
					v.Exhibits = e.Exhibits()
				}
				return json.MarshalToWriter(c.out, v, "  ")
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVar(&exhibits, "exhibits", false, "Include every exhibit")
	cmd.Flags().StringVar(&typ, "type", "", "Only include exhibits of this type (IMAGE or MODEL)")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored exhibitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				list, err := s.List(ctx)
				if err != nil {
					return err
				}
				return json.MarshalToWriter(c.out, list, "  ")
			})
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every exhibition with the given name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				n, err := s.DeleteByName(ctx, name)
				if err != nil {
					return err
				}
				if n == 0 {
					return errors.New(errors.ErrorTypeNotFound, "exhibition not found").WithDetail("name", name)
				}
				return json.MarshalToWriter(c.out, map[string]interface{}{"name": name, "deleted": n}, "")
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Exhibition name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var (
		file  string
		force bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(file); err == nil && !force {
				return errors.New(errors.ErrorTypeConflict, "configuration file exists, use --force to overwrite").
					WithDetail("path", file)
			}
			if err := config.Save(file, c.cfg); err != nil {
				return errors.Wrap(err, errors.ErrorTypeConfig, "failed to save configuration")
			}
			c.logger.Info("wrote configuration", zap.String("path", file))
			_, err := fmt.Fprintln(c.out, file)
			return err
		},
	}
	initCmd.Flags().StringVarP(&file, "file", "f", "vrem.yaml", "Configuration file to write")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "VREM v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
