// LoadPlanner - Container Loading Optimizer
//
// Reads a cargo manifest (CSV or Excel), assigns every unit to a position in
// one or more shipping containers and writes the plan as a table, JSON,
// PDF report, QR labels, Excel workbook or 3D DXF.
//
// Build:
//   go build -o loadplanner ./cmd/loadplanner
//
// Usage:
//   loadplanner -template manifest.xlsx
//   loadplanner -manifest manifest.xlsx -containers 20gp,40hq -pdf plan.pdf
//   loadplanner -manifest manifest.csv -compare

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/piwi3910/LoadPlanner/internal/cache"
	"github.com/piwi3910/LoadPlanner/internal/engine"
	"github.com/piwi3910/LoadPlanner/internal/export"
	"github.com/piwi3910/LoadPlanner/internal/importer"
	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/piwi3910/LoadPlanner/internal/project"
)

const maxRecentProjects = 10

type options struct {
	manifest    string
	loadProject string
	containers  containerList

	jsonOut    string
	pdfOut     string
	labelsOut  string
	xlsxOut    string
	dxfOut     string
	projectOut string

	compare  bool
	list     bool
	template string

	configPath string
	redisAddr  string
	logLevel   string
}

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, envErr == nil)
	stop()
	os.Exit(code)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("loadplanner", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.manifest, "manifest", "", "cargo manifest to load (.csv, .xlsx)")
	fs.StringVar(&opts.loadProject, "load", "", "re-plan a saved project file instead of a manifest")
	fs.Var(&opts.containers, "containers", "comma separated container ids, e.g. \"20gp,40hq\" (default from config)")

	fs.StringVar(&opts.jsonOut, "json", "", "write the result as JSON (\"-\" for stdout)")
	fs.StringVar(&opts.pdfOut, "pdf", "", "write a PDF loading report")
	fs.StringVar(&opts.labelsOut, "labels", "", "write a PDF of QR-coded unit labels")
	fs.StringVar(&opts.xlsxOut, "xlsx", "", "write an Excel workbook of the plan")
	fs.StringVar(&opts.dxfOut, "dxf", "", "write a 3D DXF wireframe of the plan")
	fs.StringVar(&opts.projectOut, "project", "", "save manifest, selection and result as a project file")

	fs.BoolVar(&opts.compare, "compare", false, "compare the selection against single-type and all-type scenarios")
	fs.BoolVar(&opts.list, "list", false, "print the container catalog and exit")
	fs.StringVar(&opts.template, "template", "", "write an import template (.csv or .xlsx) and exit")

	fs.StringVar(&opts.configPath, "config", "", "config file (default ~/.loadplanner/config.json)")
	fs.StringVar(&opts.redisAddr, "redis", "", "Redis address for the result cache (overrides REDIS_ADDR)")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// loadConfig reads the config file and applies environment and flag
// overrides, in that order.
func loadConfig(opts options) (model.AppConfig, string, error) {
	path := opts.configPath
	if path == "" {
		path = getEnv("LOADPLANNER_CONFIG", project.DefaultConfigPath())
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return cfg, path, err
	}

	if v := os.Getenv("LOADPLANNER_CONTAINERS"); v != "" {
		var ids containerList
		if err := ids.Set(v); err != nil {
			return cfg, path, fmt.Errorf("LOADPLANNER_CONTAINERS: %w", err)
		}
		cfg.DefaultContainers = ids
	}
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if opts.redisAddr != "" {
		cfg.RedisAddr = opts.redisAddr
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, path, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, envLoaded bool) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, cfgPath, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger := newLogger(stderr, cfg.LogLevel)
	if !envLoaded {
		logger.Debug("no .env file found, using environment variables")
	}

	if opts.list {
		if err := printCatalog(stdout); err != nil {
			logger.Error("printing catalog", "error", err)
			return 1
		}
		return 0
	}

	if opts.template != "" {
		if err := writeTemplate(opts.template); err != nil {
			logger.Error("writing template", "path", opts.template, "error", err)
			return 1
		}
		logger.Info("template written", "path", opts.template)
		return 0
	}

	proj, err := loadInputs(opts, cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	containers, err := proj.SelectedContainers()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	opt := engine.New(logger)

	if opts.compare {
		results := opt.CompareScenarios(engine.BuildDefaultScenarios(containers), proj.Items)
		if err := printComparison(stdout, results); err != nil {
			logger.Error("printing comparison", "error", err)
			return 1
		}
		return 0
	}

	result := optimize(ctx, cfg, opt, logger, proj.Items, containers)
	proj.Result = &result

	if err := printSummary(stdout, result); err != nil {
		logger.Error("printing summary", "error", err)
		return 1
	}

	if err := project.EnsureOutputDir(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := writeOutputs(opts, cfg.OutputDir, result, stdout, logger); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if opts.projectOut != "" {
		path := outputPath(cfg.OutputDir, opts.projectOut)
		if err := saveProject(path, proj, cfgPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		logger.Info("project saved", "path", path)
	}
	return 0
}

// loadInputs builds the project to plan from either a saved project or a
// manifest file. Explicit -containers always win.
func loadInputs(opts options, cfg model.AppConfig, logger *slog.Logger) (model.Project, error) {
	var proj model.Project

	switch {
	case opts.loadProject != "" && opts.manifest != "":
		return proj, fmt.Errorf("use either -manifest or -load, not both")

	case opts.loadProject != "":
		p, err := project.LoadProject(opts.loadProject)
		if err != nil {
			return proj, err
		}
		proj = p

	case opts.manifest != "":
		res := importer.ImportFile(opts.manifest)
		for _, w := range res.Warnings {
			logger.Warn("import", "file", opts.manifest, "detail", w)
		}
		if len(res.Errors) > 0 {
			return proj, fmt.Errorf("import %s failed:\n  %s", opts.manifest, strings.Join(res.Errors, "\n  "))
		}
		name := strings.TrimSuffix(filepath.Base(opts.manifest), filepath.Ext(opts.manifest))
		proj = model.NewProject(name)
		proj.Items = res.Items
		proj.Containers = cfg.DefaultContainers

	default:
		return proj, fmt.Errorf("no input: pass -manifest FILE or -load PROJECT (see -h)")
	}

	if len(opts.containers) > 0 {
		proj.Containers = opts.containers
	}
	if len(proj.Items) == 0 {
		return proj, fmt.Errorf("no cargo items to plan")
	}
	for _, it := range proj.Items {
		if err := it.Validate(); err != nil {
			return proj, err
		}
	}
	logger.Info("inputs loaded", "items", len(proj.Items), "containers", strings.Join(proj.Containers, ","))
	return proj, nil
}

// optimize runs the optimizer, going through the Redis result cache when
// one is configured.
func optimize(ctx context.Context, cfg model.AppConfig, opt *engine.Optimizer, logger *slog.Logger,
	items []model.CargoItem, containers []model.ContainerSpec) model.OptimizationResult {
	if cfg.RedisAddr == "" {
		return opt.Optimize(items, containers)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer client.Close()

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	result, hit, err := cache.Optimize(ctx, cache.NewRedisCache(client, ttl), opt, logger, items, containers)
	if err != nil {
		logger.Warn("result cache unavailable", "error", err)
		return opt.Optimize(items, containers)
	}
	if hit {
		logger.Info("using cached result", "redis", cfg.RedisAddr)
	}
	return result
}

func writeTemplate(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.WriteExcelTemplate(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := importer.WriteCSVTemplate(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, result model.OptimizationResult, stdout io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// outputPath places relative output paths under dir. "-" and absolute
// paths are returned unchanged.
func outputPath(dir, path string) string {
	if path == "-" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func writeOutputs(opts options, dir string, result model.OptimizationResult, stdout io.Writer, logger *slog.Logger) error {
	outputs := []struct {
		kind  string
		path  string
		write func(string) error
	}{
		{"json", opts.jsonOut, func(p string) error { return writeJSON(p, result, stdout) }},
		{"pdf", opts.pdfOut, func(p string) error { return export.ExportPDF(p, result) }},
		{"labels", opts.labelsOut, func(p string) error { return export.ExportLabels(p, result) }},
		{"xlsx", opts.xlsxOut, func(p string) error { return export.ExportWorkbook(p, result) }},
		{"dxf", opts.dxfOut, func(p string) error { return export.ExportDXF(p, result) }},
	}

	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		path := outputPath(dir, o.path)
		if err := o.write(path); err != nil {
			return fmt.Errorf("%s export to %s: %w", o.kind, path, err)
		}
		if path != "-" {
			logger.Info("exported", "kind", o.kind, "path", path)
		}
	}
	return nil
}

// saveProject writes the project and records it in the config's recent
// list. The config is re-read from disk; env and flag overrides are not
// persisted.
func saveProject(path string, proj model.Project, cfgPath string) error {
	if err := project.SaveProject(path, proj); err != nil {
		return err
	}
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return err
	}
	cfg.AddRecentProject(path, maxRecentProjects)
	return project.SaveAppConfig(cfgPath, cfg)
}
