package application

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/manifest-placeholders/internal/config"
	"github.com/eugenenazirov/manifest-placeholders/internal/envfile"
	"github.com/eugenenazirov/manifest-placeholders/internal/logging"
	"github.com/eugenenazirov/manifest-placeholders/internal/manifest"
	"github.com/eugenenazirov/manifest-placeholders/internal/params"
	"github.com/eugenenazirov/manifest-placeholders/internal/resolver"
)

const outputFileMode = 0o600

// App holds the configuration and collaborators for one resolution pass.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	stdout  io.Writer
	environ func() []string
}

// Option configures App behaviour.
type Option func(*App)

// WithStdout overrides where the binding is written when no output file is
// configured, primarily for tests.
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// WithEnviron overrides the process environment used for Gradle-style
// parameters, primarily for tests.
func WithEnviron(environ func() []string) Option {
	return func(a *App) {
		a.environ = environ
	}
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		logger:  logger,
		stdout:  os.Stdout,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run resolves the placeholders and publishes them.
func (a *App) Run() error {
	resolved, err := a.Resolve()
	if err != nil {
		return err
	}
	return a.Publish(resolved)
}

// Resolve loads every source and applies the placeholder rules.
func (a *App) Resolve() (resolver.Resolved, error) {
	env, report, err := envfile.Read(a.cfg.EnvFile)
	if err != nil {
		return resolver.Resolved{}, fmt.Errorf("load env file: %w", err)
	}
	a.logEnvReport(report)

	rules, err := a.rules()
	if err != nil {
		return resolver.Resolved{}, err
	}

	build, err := a.buildParams()
	if err != nil {
		return resolver.Resolved{}, err
	}

	resolved := resolver.ResolveAll(rules, env, build)
	for _, name := range resolved.Names() {
		v, _ := resolved.Detail(name)
		a.logger.Info("placeholder resolved",
			zap.String("placeholder", name),
			zap.String("origin", string(v.Origin)),
			zap.String("key", v.Key),
			logging.Redacted("value", v.Value),
		)
	}
	return resolved, nil
}

// Publish writes the binding and, when configured, the rendered manifest.
func (a *App) Publish(resolved resolver.Resolved) error {
	placeholders := manifest.Placeholders(resolved)

	var buf bytes.Buffer
	if err := manifest.Write(&buf, a.cfg.Format, placeholders); err != nil {
		return err
	}
	if err := a.writeOutput(a.cfg.Output, buf.Bytes()); err != nil {
		return fmt.Errorf("write placeholders: %w", err)
	}

	if a.cfg.ManifestTemplate == "" {
		return nil
	}

	tmpl, err := os.ReadFile(a.cfg.ManifestTemplate)
	if err != nil {
		return fmt.Errorf("read manifest template: %w", err)
	}
	rendered, err := manifest.Render(tmpl, placeholders)
	if err != nil {
		return fmt.Errorf("render manifest %s: %w", a.cfg.ManifestTemplate, err)
	}
	if err := a.writeOutput(a.cfg.ManifestOutput, rendered); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	a.logger.Info("manifest rendered",
		zap.String("template", a.cfg.ManifestTemplate),
		zap.String("output", a.cfg.ManifestOutput),
	)
	return nil
}

func (a *App) rules() ([]resolver.Rule, error) {
	rules := resolver.DefaultRules()
	if a.cfg.RulesFile == "" {
		return rules, nil
	}

	extra, err := resolver.LoadRules(a.cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules %s: %w", a.cfg.RulesFile, err)
	}
	a.logger.Debug("placeholder rules loaded",
		zap.String("path", a.cfg.RulesFile),
		zap.Int("rules", len(extra)),
	)
	return resolver.MergeRules(rules, extra), nil
}

// buildParams merges parameter files, Gradle environment variables and
// explicit parameters, later sources winning.
func (a *App) buildParams() (params.Map, error) {
	merged := params.Map{}
	for _, path := range a.cfg.ParamsFiles {
		m, err := params.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load params: %w", err)
		}
		a.logger.Debug("params file loaded", zap.String("path", path), zap.Int("params", len(m)))
		merged = merged.Merge(m)
	}

	if a.cfg.ParamsFromEnv {
		m := params.FromEnviron(a.environ(), params.GradleEnvPrefix)
		a.logger.Debug("params read from environment", zap.Strings("keys", m.Keys()))
		merged = merged.Merge(m)
	}

	return merged.Merge(a.cfg.Params), nil
}

func (a *App) logEnvReport(report envfile.Report) {
	if !report.Exists {
		a.logger.Info("env file not found, using other sources", zap.String("path", report.Path))
		return
	}
	a.logger.Debug("env file loaded",
		zap.String("path", report.Path),
		zap.Int("entries", report.Entries),
	)
	if len(report.Skipped) > 0 {
		a.logger.Warn("env file lines skipped",
			zap.String("path", report.Path),
			zap.Ints("lines", report.Skipped),
		)
	}
}

func (a *App) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, outputFileMode)
}
