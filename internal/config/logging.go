package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Logging levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// LoggingConfig defines console and file logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // none, normal, debug (default: normal)
	File  string `yaml:"file"`  // Optional log file, always at debug level
	Mode  string `yaml:"mode"`  // append or overwrite (default: overwrite)
}

// Validate checks the level and mode names.
func (conf *LoggingConfig) Validate() error {
	switch conf.Level {
	case "", LevelNone, LevelNormal, LevelDebug:
	default:
		return fmt.Errorf("%w: logging.level %q (must be none, normal, or debug)", ErrInvalidValue, conf.Level)
	}
	switch conf.Mode {
	case "", "append", "overwrite":
	default:
		return fmt.Errorf("%w: logging.mode %q (must be append or overwrite)", ErrInvalidValue, conf.Mode)
	}
	return validateFieldLength("logging.file", conf.File, MaxPathLength)
}

// Prepare builds the program logger. Info and warnings go to stdout, errors
// to stderr. The returned function closes the log file, if any.
func (conf *LoggingConfig) Prepare(stdout, stderr zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowFrom := func(from zapcore.Level) zap.LevelEnablerFunc {
		return func(lvl zapcore.Level) bool { return from <= lvl && lvl < zapcore.ErrorLevel }
	}

	var consoleLP, consoleHP zapcore.Core
	switch conf.Level {
	case "", LevelNormal:
		consoleLP = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(stdout), lowFrom(zapcore.InfoLevel))
		consoleHP = zapcore.NewCore(newEncoder(ec), zapcore.Lock(stderr), highPriority)
	case LevelDebug:
		consoleLP = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(stdout), lowFrom(zapcore.DebugLevel))
		consoleHP = zapcore.NewCore(newEncoder(ec), zapcore.Lock(stderr), highPriority)
	default:
		consoleLP = zapcore.NewNopCore()
		consoleHP = zapcore.NewNopCore()
	}

	fileCore := zapcore.NewNopCore()
	closer := func() error { return nil }
	if conf.File != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.Mode == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(conf.File, flags, 0644) // #nosec G304 -- log path is user-provided
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open log file (%s): %w", conf.File, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), zap.DebugLevel)
		closer = f.Close
	}

	log := zap.New(zapcore.NewTee(consoleHP, consoleLP, fileCore), zap.AddCaller())
	return log.Named("md2docx"), closer, nil
}

// consoleEnc prints only the message of error fields, never their verbose form.
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
