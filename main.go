package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	intervalFlag := flag.Int("interval", 0, "CPU sampling interval in seconds (default 2)")
	volumeFlag := flag.String("volume", "", "Volume to report disk usage for (default / or C:\\)")
	outputDirFlag := flag.String("output-dir", "", "Directory for the report log file (default current directory)")
	formatFlag := flag.String("format", "", "Report format: text, json (structured) or yaml")
	samplerFlag := flag.String("sampler", "", "Metrics sampler: gopsutil (default) or native")
	metricsFileFlag := flag.String("metrics-file", "", "Also write Prometheus textfile metrics to this path")
	logLevelFlag := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("healthgrade", version)
		return
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = defaultConfigPath()
	}

	config, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(exitConfig)
	}

	// Apply flag overrides
	if *intervalFlag != 0 {
		config.Interval = *intervalFlag
	}
	if *volumeFlag != "" {
		config.Volume = *volumeFlag
	}
	if *outputDirFlag != "" {
		config.OutputDir = *outputDirFlag
	}
	if *formatFlag != "" {
		config.Format = *formatFlag
	}
	if *samplerFlag != "" {
		config.Sampler = *samplerFlag
	}
	if *metricsFileFlag != "" {
		config.MetricsFile = *metricsFileFlag
	}
	if *logLevelFlag != "" {
		config.LogLevel = *logLevelFlag
	}

	logger, err := initLogger(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}

	_, err = run(config, runDeps{
		newSampler: newSampler,
		display:    os.Stdout,
		logger:     logger,
	})
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// initLogger logs to stderr so stdout carries nothing but the report.
func initLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, &ConfigurationError{Field: "log_level", Value: level, Reason: err.Error()}
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
