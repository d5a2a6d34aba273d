// Command librelingo exports LibreLingo courses as static JSON bundles.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/iasonasma/LibreLingo/pkg/config"
	"github.com/iasonasma/LibreLingo/pkg/db"
	"github.com/iasonasma/LibreLingo/pkg/dictionary"
	"github.com/iasonasma/LibreLingo/pkg/export"
	"github.com/iasonasma/LibreLingo/pkg/images"
	"github.com/iasonasma/LibreLingo/pkg/logging"
	"github.com/iasonasma/LibreLingo/pkg/publish"
)

// CLI defines the command-line interface. Global flags override the
// LIBRELINGO_* environment.
type CLI struct {
	DB        string `name:"db" help:"Path to the SQLite content database."`
	Out       string `name:"out" help:"Directory that receives one folder per course."`
	Manifest  string `name:"manifest" help:"Path of the audio manifest."`
	Images    string `name:"images" help:"Image attribution CSV listing the permitted image names."`
	LogLevel  string `name:"log-level" help:"debug, info, warn or error."`
	LogFormat string `name:"log-format" help:"text or json."`

	Export           ExportCmd           `cmd:"" help:"Export a course bundle and the audio manifest."`
	ImportDictionary ImportDictionaryCmd `cmd:"" name:"import-dictionary" help:"Import dictionary items for a course from a JSON file or URL."`
	InitDB           InitDBCmd           `cmd:"" name:"init-db" help:"Create the database schema."`
}

// app carries what every command needs once flags and config are merged.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	stdout io.Writer
}

func (a *app) open() (*sql.DB, error) {
	conn, err := db.Open(a.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.DatabasePath, err)
	}
	return conn, nil
}

// ExportCmd exports one course.
type ExportCmd struct {
	CourseID int64 `arg:"" name:"course-id" help:"Database id of the course."`
	Publish  bool  `help:"Upload the bundle to the configured S3 bucket afterwards."`
}

func (c *ExportCmd) Run(ctx context.Context, a *app) error {
	if c.Publish && !a.cfg.Publish.Enabled() {
		return fmt.Errorf("--publish needs LIBRELINGO_S3_ENDPOINT")
	}
	catalog, err := images.Load(a.cfg.ImagesPath)
	if err != nil {
		return err
	}
	a.log.Debug("image catalog loaded", "path", a.cfg.ImagesPath, "images", catalog.Len())

	conn, err := a.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	e := export.NewExporter(conn)
	e.OutputRoot = a.cfg.OutputRoot
	e.ManifestPath = a.cfg.ManifestPath
	e.CacheSize = a.cfg.DictCacheSize
	e.Validator = db.NewValidator(catalog)
	e.Logger = a.log

	res, err := e.ExportCourseByID(ctx, c.CourseID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Exported %s: %d skills, %d audios\n", res.CourseID, len(res.SkillFiles), res.ManifestLines)

	if !c.Publish {
		return nil
	}
	pc := a.cfg.Publish
	store, err := publish.NewS3Store(publish.S3Config{
		Endpoint:  pc.Endpoint,
		Region:    pc.Region,
		AccessKey: pc.AccessKey,
		SecretKey: pc.SecretKey,
		Bucket:    pc.Bucket,
		UseSSL:    pc.UseSSL,
	})
	if err != nil {
		return err
	}
	p := publish.NewPublisher(store, pc.Prefix)
	p.Logger = a.log
	keys, err := p.PublishCourse(ctx, res.CourseID, res.Dir, res.ManifestPath)
	if err != nil {
		return fmt.Errorf("publish %s: %w", res.CourseID, err)
	}
	fmt.Fprintf(a.stdout, "Published %d objects to %s\n", len(keys), pc.Bucket)
	return nil
}

// ImportDictionaryCmd loads dictionary items into a course.
type ImportDictionaryCmd struct {
	CourseID int64  `arg:"" name:"course-id" help:"Database id of the course."`
	Source   string `arg:"" help:"JSON file, or an http(s) URL to download it from (.gz accepted)."`
}

func (c *ImportDictionaryCmd) Run(ctx context.Context, a *app) error {
	path := c.Source
	if dictionary.IsRemote(c.Source) {
		tmp, err := os.MkdirTemp("", "librelingo-dict-*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		path = filepath.Join(tmp, "dictionary.json")
		a.log.Info("downloading dictionary", "url", c.Source)
		client := &http.Client{Timeout: 5 * time.Minute}
		if err := dictionary.Download(ctx, client, c.Source, path); err != nil {
			return err
		}
	}
	entries, err := dictionary.LoadFile(path)
	if err != nil {
		return err
	}

	conn, err := a.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	im := dictionary.NewImporter(conn)
	im.Logger = a.log
	n, err := im.Import(ctx, c.CourseID, entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d dictionary items\n", n)
	return nil
}

// InitDBCmd creates the schema.
type InitDBCmd struct{}

func (c *InitDBCmd) Run(a *app) error {
	conn, err := a.open()
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Fprintf(a.stdout, "Database initialized at %s\n", a.cfg.DatabasePath)
	return nil
}

// merge applies non-empty flags over cfg.
func (c *CLI) merge(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.DatabasePath, c.DB)
	set(&cfg.OutputRoot, c.Out)
	set(&cfg.ManifestPath, c.Manifest)
	set(&cfg.ImagesPath, c.Images)
	set(&cfg.LogLevel, c.LogLevel)
	set(&cfg.LogFormat, c.LogFormat)
}

// run parses args and executes the selected command. It returns the
// process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("librelingo"),
		kong.Description("Export LibreLingo courses as static JSON bundles."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "librelingo: %v\n", err)
		return 1
	}
	cli.merge(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "librelingo: %v\n", err)
		return 1
	}

	a := &app{
		cfg:    cfg,
		log:    logging.New(cfg.LogLevel, cfg.LogFormat, stderr),
		stdout: stdout,
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(a); err != nil {
		fmt.Fprintf(stderr, "librelingo: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
