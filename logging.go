package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	jsonhandler "github.com/apex/log/handlers/json"
	texthandler "github.com/apex/log/handlers/text"

	"launcher/config"
)

// setupLogging installs the apex/log handler described by cfg. With a log
// file configured, the previous file is kept as a single ".1" backup. The
// returned writer is where gin's own output should go; the returned file, if
// any, must be closed on shutdown.
func setupLogging(cfg *config.Config) (io.Writer, *os.File, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	var (
		out  io.Writer = os.Stderr
		file *os.File
	)
	if cfg.LogFilePath != "" {
		file, err = rotateLogFile(cfg.LogFilePath)
		if err != nil {
			return nil, nil, err
		}
		out = file
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		log.SetHandler(jsonhandler.New(out))
	case "cli":
		log.SetHandler(clihandler.New(out))
	case "text", "":
		if file == nil {
			log.SetHandler(clihandler.New(out))
		} else {
			log.SetHandler(texthandler.New(out))
		}
	default:
		if file != nil {
			file.Close()
		}
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return out, file, nil
}

// rotateLogFile keeps one history file: path.1 is dropped, path becomes
// path.1 and a fresh path is opened.
func rotateLogFile(path string) (*os.File, error) {
	_ = os.Remove(path + ".1")

	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".1"); err != nil {
			return nil, fmt.Errorf("failed to rotate existing log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
