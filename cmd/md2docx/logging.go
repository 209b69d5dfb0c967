package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-md2docx/internal/config"
)

// loadConfig returns the defaults when no config file was named.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// prepareLogger builds the logger from the logging section. --quiet and
// --verbose override its level.
func prepareLogger(conf config.LoggingConfig, common commonFlags, env *Environment) (*zap.Logger, func() error, error) {
	switch {
	case common.quiet:
		conf.Level = config.LevelNone
	case common.verbose:
		conf.Level = config.LevelDebug
	}
	return conf.Prepare(zapcore.AddSync(env.Stdout), zapcore.AddSync(env.Stderr))
}
