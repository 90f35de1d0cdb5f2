// Command portalctl runs administrative tasks against the portal database.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yigit/campusportal/internal/bootstrap"
	"github.com/yigit/campusportal/internal/config"
	"github.com/yigit/campusportal/internal/db"
	"github.com/yigit/campusportal/internal/pkg/logger"
	"github.com/yigit/campusportal/internal/seed"
)

func main() {
	app := &cli.App{
		Name:  "portalctl",
		Usage: "campus portal administration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   filepath.Join("configs", "config.yaml"),
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations",
				Action: migrate,
			},
			{
				Name:   "check-db",
				Usage:  "test the database connection",
				Action: checkDB,
			},
			{
				Name:   "seed",
				Usage:  "create the configured admin and the sample courses",
				Action: seedDefaults,
			},
			{
				Name:  "create-admin",
				Usage: "create an admin account, or promote an existing one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("portalctl failed")
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, _, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	return cfg, err
}

func connect(c *cli.Context) (*config.Config, *db.PostgresDB, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return nil, nil, fmt.Errorf("command needs the %s driver, configured %q", config.DriverPostgres, cfg.Database.Driver)
	}
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}

func migrate(c *cli.Context) error {
	cfg, database, err := connect(c)
	if err != nil {
		return err
	}
	defer database.Close()
	return bootstrap.RunMigrations(c.Context, cfg, database, logger.Get())
}

func checkDB(c *cli.Context) error {
	_, database, err := connect(c)
	if err != nil {
		return err
	}
	defer database.Close()

	profiles, err := database.CheckConnection(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "connection ok, %d profiles\n", profiles)
	return nil
}

// openDependencies opens the configured store, applying migrations for postgres
func openDependencies(c *cli.Context) (*config.Config, *bootstrap.Dependencies, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}
	store, closeStore, err := bootstrap.OpenStore(cfg, logger.Get())
	if err != nil {
		return nil, nil, nil, err
	}
	deps, err := bootstrap.BuildDependencies(cfg, store, logger.Get())
	if err != nil {
		closeStore()
		return nil, nil, nil, err
	}
	return cfg, deps, closeStore, nil
}

func seedDefaults(c *cli.Context) error {
	cfg, deps, closeStore, err := openDependencies(c)
	if err != nil {
		return err
	}
	defer closeStore()

	return seed.CreateDefaultData(c.Context, deps.Store, deps.AuthService, seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminName:     cfg.Seed.AdminName,
		AdminPassword: cfg.Seed.AdminPassword,
		SampleCourses: cfg.Seed.SampleCourses,
	}, deps.Logger)
}

func createAdmin(c *cli.Context) error {
	_, deps, closeStore, err := openDependencies(c)
	if err != nil {
		return err
	}
	defer closeStore()

	profile, created, err := seed.EnsureAdmin(c.Context, deps.Store, deps.AuthService,
		c.String("email"), c.String("name"), c.String("password"), deps.Logger)
	if err != nil {
		return err
	}

	verb := "promoted"
	if created {
		verb = "created"
	}
	fmt.Fprintf(c.App.Writer, "%s admin %s (%s)\n", verb, profile.Email, profile.ID)
	return nil
}
