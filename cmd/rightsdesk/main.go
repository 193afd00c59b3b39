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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/rightsdesk"
	"github.com/poiesic/rightsdesk/config"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rightsdesk",
		Usage: "Know-your-rights guides, dispute letters and step-by-step checklists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config and " + config.EnvDatabase + ")",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with secrets",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "no-ai",
				Usage: "Skip the AI advisory",
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return loadConfig(c)
		},
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Import the built-in catalog or a YAML catalog file",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "YAML catalog to import instead of the built-in one",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries written per batch (defaults to config)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: 3,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank guides and templates for a situation",
				ArgsUsage: "<query>",
				Action:    searchCommand,
			},
			{
				Name:   "suggestions",
				Usage:  "Show example queries",
				Action: suggestionsCommand,
			},
			{
				Name:   "browse",
				Usage:  "List rights guides by category",
				Action: browseCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category to show (all, " + strings.Join(catalogCategories(), ", ") + ")",
						Value: "all",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Filter by title, summary or tag",
					},
				},
			},
			{
				Name:   "templates",
				Usage:  "List letter templates and whether they are unlocked",
				Action: templatesCommand,
			},
			{
				Name:      "save",
				Usage:     "Bookmark a rights guide or template",
				ArgsUsage: "<rights|template> <id>",
				Action:    saveCommand,
			},
			{
				Name:      "unsave",
				Usage:     "Remove a bookmark",
				ArgsUsage: "<rights|template> <id>",
				Action:    unsaveCommand,
			},
			{
				Name:   "saved",
				Usage:  "List bookmarks",
				Action: savedCommand,
			},
			{
				Name:      "unlock",
				Usage:     "Record payment for a premium template",
				ArgsUsage: "<template id>",
				Action:    unlockCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "reference",
						Aliases:  []string{"r"},
						Usage:    "Payment transaction reference",
						Required: true,
					},
				},
			},
			{
				Name:      "export",
				Usage:     "Write a template to a text file",
				ArgsUsage: "<template id>",
				Action:    exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory to write into",
						Value:   ".",
					},
				},
			},
			{
				Name:  "scenario",
				Usage: "Work through a step-by-step dispute guide",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List available guides",
						Action: scenarioListCommand,
					},
					{
						Name:      "show",
						Usage:     "Show a guide and your progress",
						ArgsUsage: "<name>",
						Action:    scenarioShowCommand,
					},
					{
						Name:      "toggle",
						Usage:     "Mark a step done or not done",
						ArgsUsage: "<name> <step id>",
						Action:    scenarioToggleCommand,
					},
					{
						Name:      "phase",
						Usage:     "Select the current phase (1-based)",
						ArgsUsage: "<name> <phase>",
						Action:    scenarioPhaseCommand,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "Port to listen on (overrides config and " + config.EnvPort + ")",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func loadConfig(c *cli.Context) error {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if c.Bool("no-ai") {
		cfg.LLM.Enabled = false
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	cfg, _ := c.App.Metadata[configKey].(*config.Config)
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// openDesk opens the configured database, seeding it on first use unless
// seed is false.
func openDesk(c *cli.Context, seed bool) (*rightsdesk.Desk, error) {
	cfg := appConfig(c)

	opts := []rightsdesk.DeskOption{rightsdesk.WithAIConfig(cfg.AIConfig())}
	if !cfg.LLM.Enabled {
		opts = append(opts, rightsdesk.WithoutAdvisor())
	}
	if cfg.Storage.InMemory {
		opts = append(opts, rightsdesk.InMemory())
	}

	desk, err := rightsdesk.NewDesk(cfg.Storage.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if seed {
		if _, err := desk.EnsureSeeded(c.Context); err != nil {
			desk.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return desk, nil
}
