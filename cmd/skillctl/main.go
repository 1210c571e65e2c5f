// Command skillctl is the operator tool for skillset: issue tokens, apply the
// schema and seed the directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"skillset/internal/directory"
	"skillset/internal/directory/manager"
	"skillset/internal/directory/store"
	jwttoken "skillset/internal/jwt_token"
	"skillset/internal/platform/config"
	"skillset/internal/platform/logger"
	"skillset/internal/platform/postgres"
	platformredis "skillset/internal/platform/redis"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "skillctl:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "skillctl",
		Usage:  "operate a skillset deployment",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading SKILLSET_* variables",
			},
		},
		Commands: []*cli.Command{
			tokenCommand(),
			migrateCommand(),
			seedCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (config.Server, error) {
	return config.Load(c.StringSlice("env-file")...)
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:      "token",
		Usage:     "issue a bearer token for directory writes",
		ArgsUsage: "<subject>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scope", Value: "directory:write"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (default SKILLSET_JWT_TTL)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("token requires exactly one subject")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if !cfg.Auth.Enabled() {
				return errors.New("SKILLSET_JWT_SIGNING_KEY is not set")
			}
			ttl := cfg.Auth.TokenTTL
			if c.IsSet("ttl") {
				ttl = c.Duration("ttl")
			}
			token, err := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer).
				GenerateToken(c.Args().First(), c.String("scope"), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply the postgres schema",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			db, err := postgres.Open(c.Context, cfg.Postgres)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(c.Context, db); err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, "schema applied")
			return err
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "load people and skills from a YAML file into the configured store",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("seed requires a file")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.Storage == config.StorageMemory {
				return errors.New("seeding the memory backend has no lasting effect; set SKILLSET_STORAGE")
			}
			sf, err := store.LoadSeedFile(c.Args().First())
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, "text", os.Stderr)
			var backends directory.Backends
			switch cfg.Storage {
			case config.StoragePostgres:
				db, err := postgres.Open(c.Context, cfg.Postgres)
				if err != nil {
					return err
				}
				defer db.Close()
				backends.DB = db
			case config.StorageRedis:
				client, err := platformredis.New(c.Context, cfg.Redis)
				if err != nil {
					return err
				}
				defer client.Close()
				backends.Redis = client.Client
			}

			stores, err := directory.NewStores(cfg.Storage, backends)
			if err != nil {
				return err
			}
			dir, err := directory.New(stores, manager.WithLogger(log))
			if err != nil {
				return err
			}
			report, err := sf.Apply(c.Context, dir.People, dir.Skills, log)
			fmt.Fprintf(c.App.Writer, "created=%d skipped=%d invalid=%d failed=%d\n",
				report.Created, report.Skipped, report.Invalid, report.Failed)
			return err
		},
	}
}

