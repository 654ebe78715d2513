package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cinema-catalog/cmd"
	"cinema-catalog/internal/dto/request"
	"cinema-catalog/internal/export"
	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/database"
	"cinema-catalog/pkg/utils"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var errNothingToExport = errors.New("no movies to export")

type runner struct {
	config  *utils.Config
	logger  *zap.Logger
	out     io.Writer
	now     func() time.Time
	rt      *cmd.Runtime
	service *usecase.Service
}

func newRunner(config *utils.Config, logger *zap.Logger, out io.Writer) *runner {
	return &runner{config: config, logger: logger, out: out, now: time.Now}
}

func (r *runner) register() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Apply or revert the catalog schema",
			Commands: []*cli.Command{
				{Name: "up", Usage: "Create tables and indexes", Action: r.migrateUp},
				{Name: "down", Usage: "Drop every catalog table", Action: r.migrateDown},
			},
		},
		{
			Name:   "reconcile",
			Usage:  "Delete or expire movies past their end date",
			Action: r.reconcile,
		},
		{
			Name:  "export",
			Usage: "Write the active catalog to an xlsx or docx file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "Output format: xlsx or docx",
					Value:   string(export.FormatXLSX),
				},
				&cli.StringFlag{
					Name:  "status",
					Usage: "Only movies with this status (now showing, coming soon, expired, all)",
				},
				&cli.StringFlag{
					Name:  "search",
					Usage: "Case-insensitive match on title or description",
				},
				&cli.BoolFlag{
					Name:  "genres",
					Usage: "Include genre names",
				},
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "Output directory",
					Value:   ".",
				},
			},
			Action: r.export,
		},
	}
}

// open connects on first use so that help output needs no database.
func (r *runner) open(ctx context.Context) error {
	if r.rt != nil {
		return nil
	}
	rt, err := cmd.Bootstrap(ctx, r.config, r.logger)
	if err != nil {
		return err
	}
	r.rt = rt
	r.service = usecase.NewService(rt.Repo, r.config, rt.Infra, r.logger)
	return nil
}

func (r *runner) close(context.Context, *cli.Command) error {
	if r.rt != nil {
		r.rt.Close()
	}
	return nil
}

func (r *runner) migrateUp(ctx context.Context, _ *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := database.MigrateUp(ctx, r.rt.DB); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Schema is up to date")
	return nil
}

func (r *runner) migrateDown(ctx context.Context, _ *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	if err := database.MigrateDown(ctx, r.rt.DB); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Schema dropped")
	return nil
}

func (r *runner) reconcile(ctx context.Context, _ *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	result, err := r.service.Lifecycle.Reconcile(ctx, r.now())
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintln(r.out, "Another process is reconciling, skipped")
		return nil
	}

	fmt.Fprintf(r.out, "Run %s: %d deleted, %d expired, %d failed in %s\n",
		result.RunID, result.DeletedCount, result.ExpiredCount, len(result.Failures), result.Duration.Round(time.Millisecond))
	for _, f := range result.Failures {
		fmt.Fprintf(r.out, "  movie %d: %s: %v\n", f.MovieID, f.Reason, f.Err)
	}
	return nil
}

func (r *runner) export(ctx context.Context, c *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	path, err := exportTo(ctx, r.service.Catalog, &request.MovieExportRequest{
		Status:        c.String("status"),
		Search:        c.String("search"),
		IncludeGenres: c.Bool("genres"),
		Format:        c.String("format"),
	}, c.String("out"), r.now())
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Wrote %s\n", path)
	return nil
}

// exportTo renders the filtered catalog into dir and returns the file path.
func exportTo(ctx context.Context, catalog usecase.CatalogService, req *request.MovieExportRequest, dir string, now time.Time) (string, error) {
	if req.Format == "" {
		req.Format = string(export.FormatXLSX)
	}

	movies, err := catalog.Export(ctx, req)
	if err != nil {
		return "", err
	}
	if len(movies) == 0 {
		return "", errNothingToExport
	}

	format := export.Format(req.Format)
	body, err := export.Render(format, movies, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, export.Filename(req.Status, req.Search, format, now))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
