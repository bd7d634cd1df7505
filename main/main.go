package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/gowake/io"
	"github.com/phil-mansfield/gowake/logging"
)

func main() {
	var (
		run, exampleConfig, logFile string
	)
	vars := map[string]*string{
		"Run":           &run,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&run, "Run", "",
		"Configuration file for [Run] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Run' and "+
			"'Turbine'.",
	)
	flag.StringVar(
		&logFile, "Log", "",
		"File that log output is copied to, without colors.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		if err := loadSettings(); err != nil {
			log.Fatal(err.Error())
		}

		var file *os.File
		if logFile != "" {
			file, err = os.Create(logFile)
			if err != nil {
				log.Fatal(err.Error())
			}
			defer file.Close()
		}
		logger := newLogger(file)

		con, err := io.ReadRunConfig(run)
		if err != nil {
			logger.Fatal().Err(err).Str("file", run).Msg("Could not read run file")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opt := runOptions{
			Label:    strings.TrimSuffix(filepath.Base(run), filepath.Ext(run)),
			Database: viper.GetString("db"),
			Threads:  viper.GetInt("threads"),
		}
		if err := runMain(ctx, con, opt, logger); err != nil {
			logger.Fatal().Err(err).Msg("Run failed")
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		case "Turbine":
			fmt.Println(io.ExampleTurbineFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Run' and 'Turbine'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// loadSettings reads process-wide settings from GOWAKE_* environment
// variables and an optional gowake.json in the working directory.
func loadSettings() error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("threads", 0)
	viper.SetDefault("db", "")

	viper.SetEnvPrefix("gowake")
	viper.AutomaticEnv()

	viper.SetConfigName("gowake")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading settings file: %v", err)
	}
	return nil
}

func newLogger(file *os.File) zerolog.Logger {
	var logger zerolog.Logger
	if file == nil {
		logger = logging.New(os.Stderr, nil, viper.GetString("logLevel"))
	} else {
		logger = logging.New(os.Stderr, file, viper.GetString("logLevel"))
	}
	logger.Debug().Str("loglevel", logger.GetLevel().String()).
		Msg("Logging set up")
	return logger
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gowake "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}
