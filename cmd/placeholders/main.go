package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/manifest-placeholders/internal/application"
	"github.com/eugenenazirov/manifest-placeholders/internal/config"
	"github.com/eugenenazirov/manifest-placeholders/internal/logging"
	"github.com/eugenenazirov/manifest-placeholders/internal/manifest"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "placeholders: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("placeholders", "Resolves manifest placeholders from a .env file and build parameters")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to the KEY=VALUE environment file (default .env)").String()
	rulesFile := kingpinApp.Flag("rules", "Path to a YAML file with additional placeholder rules").String()
	paramsFiles := kingpinApp.Flag("params-file", "Build-parameter file (.properties, .yaml); repeatable").Strings()
	paramFlags := kingpinApp.Flag("param", "Build parameter KEY=VALUE; repeatable").Short('P').StringMap()
	var paramsFromEnvSet bool
	paramsFromEnv := kingpinApp.Flag("params-from-env", "Read ORG_GRADLE_PROJECT_* environment variables as build parameters").IsSetByUser(&paramsFromEnvSet).Bool()
	format := kingpinApp.Flag("format", "Output format: "+formatList()).String()
	output := kingpinApp.Flag("output", "Write placeholders to this file instead of stdout").Short('o').String()
	manifestTemplate := kingpinApp.Flag("manifest-template", "Manifest template containing ${NAME} placeholders").String()
	manifestOutput := kingpinApp.Flag("manifest-output", "Where to write the rendered manifest (stdout if empty)").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		return err
	}

	overrides := &config.CLIOverrides{
		ConfigFile:       *configFile,
		EnvFile:          envFile,
		RulesFile:        rulesFile,
		ParamsFiles:      *paramsFiles,
		Params:           *paramFlags,
		Format:           format,
		Output:           output,
		ManifestTemplate: manifestTemplate,
		ManifestOutput:   manifestOutput,
		LogLevel:         logLevel,
	}

	if paramsFromEnvSet {
		overrides.ParamsFromEnv = paramsFromEnv
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := application.New(cfg, logger, application.WithStdout(stdout))
	if err := app.Run(); err != nil {
		logger.Error("placeholder resolution failed", zap.Error(err))
		return err
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(manifest.Formats()))
	for _, f := range manifest.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
