package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/logger"
	"github.com/mpeshwe/TaskManager/internal/server"
	"github.com/mpeshwe/TaskManager/internal/store"
	"github.com/mpeshwe/TaskManager/internal/store/memstore"
	"github.com/mpeshwe/TaskManager/internal/store/mysql"
	"github.com/mpeshwe/TaskManager/internal/store/postgres"
)

const defaultConfigPath = "/etc/taskmanager/taskmanager.yaml"

var rootCmd = &cobra.Command{
	Use:   "taskmanager",
	Short: "Serve the users, groups and tasks REST API",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRoot(); err != nil {
			log.Error(fmt.Sprintf("%+v", err))
			os.Exit(1)
		}
	},
}

func runRoot() error {
	cfg, err := initializeConfig()
	if err != nil {
		return err
	}
	logger.SetLogrus(cfg.Log)

	printableConfig, err := cfg.Printable()
	if err != nil {
		return err
	}
	log.Infof("taskmanager configuration: %s", printableConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("error closing database")
		}
	}()

	return server.New(cfg, db).Run(ctx)
}

type migrator interface {
	store.Store
	Migrate(ctx context.Context) error
}

// openStore connects to the configured driver and creates missing tables if asked to.
func openStore(ctx context.Context, opts config.DBConfig) (store.Store, error) {
	var (
		db  migrator
		err error
	)
	switch opts.Driver {
	case config.DriverMemory:
		log.Warn("using the in-memory store, nothing will be persisted")
		return memstore.New(), nil
	case config.DriverMySQL:
		db, err = mysql.Connect(ctx, &opts)
	case config.DriverPostgres:
		db, err = postgres.Connect(ctx, &opts)
	default:
		return nil, errors.Errorf("unknown database driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if opts.Migrate {
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "error creating tables")
		}
	}
	return db, nil
}

// initializeConfig returns the validated configuration populated from the config file,
// environment variables and command line flags.
func initializeConfig() (*config.Config, error) {
	// Fetch an initial config to get the config file path and read its settings into Viper.
	initialConfig, err := getConfig(v.AllSettings())
	if err != nil {
		return nil, err
	}

	bs, err := readConfigFile(initialConfig.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err = mergeConfigBytesIntoViper(bs); err != nil {
		return nil, err
	}

	cfg, err := getConfig(v.AllSettings())
	if err != nil {
		return nil, err
	}
	if err = cfg.Check(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func readConfigFile(configPath string) ([]byte, error) {
	isDefault := configPath == ""
	if isDefault {
		configPath = defaultConfigPath
	}

	var err error
	if _, err = os.Stat(configPath); err != nil {
		if isDefault && os.IsNotExist(err) {
			log.Warnf("no configuration file at %s, skipping", configPath)
			return nil, nil
		}
		return nil, errors.Wrap(err, "error finding configuration file")
	}
	bs, err := os.ReadFile(configPath) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration file")
	}
	return bs, nil
}

func mergeConfigBytesIntoViper(bs []byte) error {
	var configMap map[string]interface{}
	if err := yaml.Unmarshal(bs, &configMap); err != nil {
		return errors.Wrap(err, "error unmarshal yaml configuration file")
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return errors.Wrap(err, "error merge configuration to viper")
	}
	return nil
}

func getConfig(configMap map[string]interface{}) (*config.Config, error) {
	cfg := config.DefaultConfig()
	bs, err := json.Marshal(configMap)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal configuration map into json bytes")
	}
	if err = yaml.Unmarshal(bs, cfg, yaml.DisallowUnknownFields); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal configuration")
	}
	return cfg, nil
}
