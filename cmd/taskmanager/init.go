package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpeshwe/TaskManager/internal/config"
)

var v *viper.Viper

// viperKeyDelimiter marks nested values in the configuration, so `db..host` is `db: {host}`.
// A single "." would stop keys from containing dots.
const viperKeyDelimiter = ".."

//nolint:gochecknoinit
func init() {
	registerConfig()
}

type configKey []string

func (c configKey) EnvName() string {
	return "TM_" + strings.ReplaceAll(strings.ToUpper(c.FlagName()), "-", "_")
}

func (c configKey) AccessPath() string {
	return strings.ReplaceAll(strings.Join(c, viperKeyDelimiter), "-", "_")
}

func (c configKey) FlagName() string {
	return strings.Join(c, "-")
}

func registerString(flags *pflag.FlagSet, name configKey, value string, usage string) {
	flags.String(name.FlagName(), value, usage)
	_ = v.BindEnv(name.AccessPath(), name.EnvName())
	_ = v.BindPFlag(name.AccessPath(), flags.Lookup(name.FlagName()))
	v.SetDefault(name.AccessPath(), value)
}

func registerBool(flags *pflag.FlagSet, name configKey, value bool, usage string) {
	flags.Bool(name.FlagName(), value, usage)
	_ = v.BindEnv(name.AccessPath(), name.EnvName())
	_ = v.BindPFlag(name.AccessPath(), flags.Lookup(name.FlagName()))
	v.SetDefault(name.AccessPath(), value)
}

func registerInt(flags *pflag.FlagSet, name configKey, value int, usage string) {
	flags.Int(name.FlagName(), value, usage)
	_ = v.BindEnv(name.AccessPath(), name.EnvName())
	_ = v.BindPFlag(name.AccessPath(), flags.Lookup(name.FlagName()))
	v.SetDefault(name.AccessPath(), value)
}

func registerDuration(flags *pflag.FlagSet, name configKey, value config.Duration, usage string) {
	registerString(flags, name, value.String(), usage)
}

func registerConfig() {
	v = viper.NewWithOptions(viper.KeyDelimiter(viperKeyDelimiter))
	v.SetTypeByDefaultValue(true)

	defaults := config.DefaultConfig()

	// Register flags and environment variables, and set default values for the flags.
	flags := rootCmd.Flags()
	name := func(components ...string) configKey { return components }

	registerString(flags, name("config-file"),
		defaults.ConfigFile, "location of config file")
	registerInt(flags, name("port"),
		defaults.Port, "server port")

	registerString(flags, name("log", "level"),
		defaults.Log.Level, "choose logging level from [trace, debug, info, warn, error, fatal]")
	registerBool(flags, name("log", "color"),
		defaults.Log.Color, "output logs in color")

	registerString(flags, name("db", "driver"),
		defaults.DB.Driver, "database driver (mysql, postgres, memory)")
	registerString(flags, name("db", "user"),
		defaults.DB.User, "database username")
	registerString(flags, name("db", "password"),
		defaults.DB.Password, "database password")
	registerString(flags, name("db", "host"),
		defaults.DB.Host, "database host")
	registerString(flags, name("db", "port"),
		defaults.DB.Port, "database port")
	registerString(flags, name("db", "name"),
		defaults.DB.Name, "database name")
	registerString(flags, name("db", "ssl-mode"),
		defaults.DB.SSLMode, "database ssl mode (disable, require, verify-full, ...), postgres only")
	registerBool(flags, name("db", "debug"),
		defaults.DB.Debug, "log every query, postgres only")
	registerBool(flags, name("db", "migrate"),
		defaults.DB.Migrate, "create missing tables on startup")

	registerDuration(flags, name("http", "read-timeout"),
		defaults.HTTP.ReadTimeout, "maximum duration for reading a request")
	registerDuration(flags, name("http", "write-timeout"),
		defaults.HTTP.WriteTimeout, "maximum duration for writing a response")
	registerDuration(flags, name("http", "shutdown-timeout"),
		defaults.HTTP.ShutdownTimeout, "how long to wait for in-flight requests on shutdown")
}
