// Package config holds the service configuration and its defaults.
package config

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Supported values of DBConfig.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the configuration of the service.
type Config struct {
	ConfigFile string       `json:"config_file"`
	Port       int          `json:"port"`
	Log        LoggerConfig `json:"log"`
	DB         DBConfig     `json:"db"`
	HTTP       HTTPConfig   `json:"http"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Log:  *DefaultLoggerConfig(),
		DB: DBConfig{
			Driver:  DriverMySQL,
			User:    "root",
			Host:    "localhost",
			Port:    "3306",
			Name:    "todos",
			SSLMode: "disable",
			Migrate: true,
		},
		HTTP: HTTPConfig{
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
	}
}

// Validate returns every problem found in the configuration.
func (c Config) Validate() []error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	errs = append(errs, c.Log.Validate()...)
	errs = append(errs, c.DB.Validate()...)
	errs = append(errs, c.HTTP.Validate()...)
	return errs
}

// Check validates the configuration and combines the failures into one error.
func (c Config) Check() error {
	var result *multierror.Error
	result = multierror.Append(result, c.Validate()...)
	return result.ErrorOrNil()
}

// Printable returns the configuration as JSON with secrets redacted.
func (c Config) Printable() ([]byte, error) {
	if c.DB.Password != "" {
		c.DB.Password = "********"
	}
	bs, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert config to JSON")
	}
	return bs, nil
}

// DBConfig configures the persistence gateway.
type DBConfig struct {
	Driver   string `json:"driver"`
	User     string `json:"user"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Name     string `json:"name"`
	SSLMode  string `json:"ssl_mode"`
	// Debug logs every query. Only honoured by the postgres driver.
	Debug   bool `json:"debug"`
	Migrate bool `json:"migrate"`
}

// Validate implements the same contract as Config.Validate.
func (c DBConfig) Validate() []error {
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverMySQL, DriverPostgres:
	default:
		return []error{errors.Errorf("db.driver must be one of %s, %s, %s; got %q",
			DriverMySQL, DriverPostgres, DriverMemory, c.Driver)}
	}

	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("db.host must be set"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("db.name must be set"))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, errors.Errorf("db.port must be numeric, got %q", c.Port))
	}
	return errs
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	ReadTimeout     Duration `json:"read_timeout"`
	WriteTimeout    Duration `json:"write_timeout"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

// Validate implements the same contract as Config.Validate.
func (c HTTPConfig) Validate() []error {
	var errs []error
	for name, d := range map[string]Duration{
		"http.read_timeout":     c.ReadTimeout,
		"http.write_timeout":    c.WriteTimeout,
		"http.shutdown_timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			errs = append(errs, errors.Errorf("%s must not be negative", name))
		}
	}
	return errs
}

// Duration is a time.Duration that reads and writes as a string such as "30s".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler. Bare numbers, quoted or not, are read as seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
		return nil
	case string:
		if secs, err := strconv.ParseFloat(value, 64); err == nil {
			*d = Duration(time.Duration(secs * float64(time.Second)))
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "invalid duration %q", value)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.Errorf("invalid duration: %s", string(data))
	}
}
