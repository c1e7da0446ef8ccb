package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/vocabtree"
)

const envPrefix = "VOCABTOOL_"

func env(name string) []string {
	return []string{envPrefix + name}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "vocabtool",
		Usage: "inspect, validate and convert bag-of-words vocabulary trees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: env("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format (text, json)",
				EnvVars: env("LOG_FORMAT"),
			},
			&cli.Int64Flag{
				Name:    "io-limit",
				Usage:   "maximum read throughput in bytes per second (0 = unlimited)",
				EnvVars: env("IO_LIMIT"),
			},
			&cli.Int64Flag{
				Name:    "memory-limit",
				Usage:   "maximum bytes reserved up front for the node arena (0 = unlimited)",
				EnvVars: env("MEMORY_LIMIT"),
			},
			&cli.StringFlag{
				Name:    "s3-region",
				Usage:   "AWS region for s3:// paths",
				EnvVars: env("S3_REGION"),
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "custom S3-compatible endpoint URL for s3:// paths",
				EnvVars: env("S3_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "minio-endpoint",
				Usage:   "MinIO host:port; when set, s3:// paths are served by MinIO",
				EnvVars: env("MINIO_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "minio-access-key",
				EnvVars: env("MINIO_ACCESS_KEY"),
			},
			&cli.StringFlag{
				Name:    "minio-secret-key",
				EnvVars: env("MINIO_SECRET_KEY"),
			},
			&cli.BoolFlag{
				Name:    "minio-secure",
				Usage:   "use HTTPS for MinIO",
				EnvVars: env("MINIO_SECURE"),
			},
		},
		Before: func(c *cli.Context) error {
			if _, err := parseLevel(c.String("log-level")); err != nil {
				return err
			}
			switch c.String("log-format") {
			case "text", "json":
			default:
				return fmt.Errorf("bad value for --log-format %q: must be text or json", c.String("log-format"))
			}
			if c.Int64("io-limit") < 0 || c.Int64("memory-limit") < 0 {
				return fmt.Errorf("limits cannot be negative")
			}
			return nil
		},
		Commands: []*cli.Command{
			infoCommand(),
			validateCommand(),
			convertCommand(),
		},
	}
}

func descriptorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "descriptor",
		Aliases: []string{"d"},
		Value:   "orb",
		Usage:   "node descriptor format: orb, surf, binary:<bytes> or float:<dim>",
		EnvVars: env("DESCRIPTOR"),
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("bad value for --log-level %q: %w", s, err)
	}
	return level, nil
}

// options translates global flags into vocabulary options.
func options(c *cli.Context) []vocabtree.Option {
	level, _ := parseLevel(c.String("log-level"))

	logger := vocabtree.NewTextLogger(level)
	if strings.EqualFold(c.String("log-format"), "json") {
		logger = vocabtree.NewJSONLogger(level)
	}

	return []vocabtree.Option{
		vocabtree.WithLogger(logger),
		vocabtree.WithIOLimit(c.Int64("io-limit")),
		vocabtree.WithMemoryLimit(c.Int64("memory-limit")),
	}
}
