package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iwvelando/sum-match/internal/config"
	"github.com/iwvelando/sum-match/internal/server"
	"github.com/iwvelando/sum-match/internal/solver"
	"github.com/iwvelando/sum-match/pkg/constants"
	"github.com/iwvelando/sum-match/pkg/dataset"
	"github.com/iwvelando/sum-match/pkg/output"
	"github.com/iwvelando/sum-match/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	inputFlag := flag.String("input", "", "path to data file override (.txt or .csv)")
	targetFlag := flag.Float64("target", 0, "target sum override")
	toleranceFlag := flag.Float64("tolerance", 0, "tolerance override")
	modeFlag := flag.String("mode", "", "search mode override: first, all")
	algorithmFlag := flag.String("algorithm", "", "algorithm override: auto, bit-enum, meet-middle, dp, branch-bound")
	workersFlag := flag.Int("workers", 0, "worker count override")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot search")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Apply CLI overrides onto the loaded configuration
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			conf.Input.File = *inputFlag
		case "target":
			conf.Search.Target = *targetFlag
		case "tolerance":
			conf.Search.Tolerance = *toleranceFlag
		case "mode":
			conf.Search.Mode = *modeFlag
		case "algorithm":
			conf.Search.Algorithm = *algorithmFlag
		case "workers":
			conf.Search.Workers = *workersFlag
		}
	})

	if *serve {
		runServer(logger, *serverConfigLocation)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.OutputFormat(*outputFormatFlag)
	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if conf.Input.File == "" {
		logger.Fatal("no data file configured; set input.file or pass -input",
			zap.String("op", "main"),
		)
	}

	// Load the ordered value list.
	values, err := dataset.LoadFile(conf.Input.File)
	if err != nil {
		logger.Fatal("failed to load data file",
			zap.String("op", "main"),
			zap.String("file", conf.Input.File),
			zap.Error(err),
		)
	}

	opts, err := conf.SolverOptions()
	if err != nil {
		logger.Fatal("invalid search configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	opts.Logger = logger

	// Progress counts surface as debug logs; Ctrl-C cancels the search
	// and still reports whatever was found.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := make(chan int64, 1)
	opts.Progress = progress
	go func() {
		for count := range progress {
			logger.Debug("combinations found so far",
				zap.String("op", "main"),
				zap.Int64("count", count),
			)
		}
	}()

	result, err := solver.Search(ctx, values, conf.Search.Target, conf.Search.Tolerance, opts)
	close(progress)
	if err != nil {
		logger.Fatal("search failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	out := os.Stdout
	if conf.Output.File != "" {
		f, err := os.Create(conf.Output.File)
		if err != nil {
			logger.Fatal("failed to create output file",
				zap.String("op", "main"),
				zap.String("file", conf.Output.File),
				zap.Error(err),
			)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, values, conf.Search.Target, result)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(out, values, conf.Search.Target, result); err != nil {
			logger.Fatal("failed to write csv output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(out, result); err != nil {
			logger.Fatal("failed to write json output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

// runServer starts the HTTP API and blocks until the process is stopped.
func runServer(logger *zap.Logger, configLocation string) {
	serverConf, err := server.LoadConfig(configLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, serverConf.UploadSizeBytes(), version)
	logger.Info("starting HTTP API",
		zap.String("op", "main.runServer"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}
