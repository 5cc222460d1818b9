// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/poiesic/wikiscope"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/wiki"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wikiscope",
		Usage: "Compile structured Wikipedia searches and map how the results relate",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json, console)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				EnvVars: []string{"WIKISCOPE_DB"},
				Value:   defaultDBPath(),
			},
			&cli.StringFlag{
				Name:    "lang",
				Usage:   "Wikipedia language edition and interface language (de, en)",
				EnvVars: []string{"WIKISCOPE_LANG"},
				Value:   i18n.DefaultLanguage,
			},
			&cli.StringFlag{
				Name:    "user-agent",
				Usage:   "User-Agent sent to the MediaWiki API",
				EnvVars: []string{"WIKISCOPE_USER_AGENT"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			compileCommand(),
			searchCommand(),
			analyzeCommand(),
			historyCommand(),
			snapshotCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	if err := loadEnv(c.String("env-file")); err != nil {
		return err
	}
	return setupLogger(c)
}

// loadEnv loads path into the process environment. Variables already set
// win, and a missing file is not an error. Flag values bound through
// EnvVars are resolved before Before runs, so this only affects values
// read later.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file found, using process environment", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", levelStr)
	}

	var handler slog.Handler
	switch strings.ToLower(c.String("log-format")) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case "console":
		handler = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			Level:           charmlog.Level(level),
		})
	default:
		return fmt.Errorf("invalid log format: %s (must be text, json, or console)", c.String("log-format"))
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wikiscope"
	}
	return filepath.Join(dir, "wikiscope")
}

// openWorkspace is replaced in tests.
var openWorkspace = func(c *cli.Context) (*wikiscope.Workspace, error) {
	config := wiki.DefaultConfig()
	if ua := c.String("user-agent"); ua != "" {
		config = wiki.NewConfig(wiki.WithUserAgent(ua))
	}

	ws, err := wikiscope.NewWorkspace(c.String("db"), wikiscope.WithWikiConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, nil
}

func locale(c *cli.Context) i18n.Locale {
	return i18n.NewLocale(c.String("lang"))
}
