package config

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Check())
}

func TestValidateCollectsEveryError(t *testing.T) {
	c := DefaultConfig()
	c.Port = 0
	c.Log.Level = "loud"
	c.DB.Driver = "sqlite"

	errs := c.Validate()
	require.Len(t, errs, 3)

	err := c.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "port must be between")
	require.Contains(t, err.Error(), "db.driver must be one of")
}

func TestMemoryDriverNeedsNoConnectionSettings(t *testing.T) {
	c := DefaultConfig()
	c.DB = DBConfig{Driver: DriverMemory}
	require.NoError(t, c.Check())

	c.DB.Driver = DriverPostgres
	require.Len(t, c.DB.Validate(), 3)
}

func TestPrintableRedactsPassword(t *testing.T) {
	c := DefaultConfig()
	c.DB.Password = "hunter2"

	bs, err := c.Printable()
	require.NoError(t, err)
	require.False(t, strings.Contains(string(bs), "hunter2"))
	require.Equal(t, "hunter2", c.DB.Password, "Printable must not modify the receiver")
}

func TestDurationJSON(t *testing.T) {
	var h HTTPConfig
	err := json.Unmarshal(
		[]byte(`{"read_timeout": "1m", "write_timeout": 5, "shutdown_timeout": "250ms"}`), &h)
	require.NoError(t, err)
	require.Equal(t, Duration(time.Minute), h.ReadTimeout)
	require.Equal(t, Duration(5*time.Second), h.WriteTimeout)
	require.Equal(t, Duration(250*time.Millisecond), h.ShutdownTimeout)

	bs, err := json.Marshal(h.ReadTimeout)
	require.NoError(t, err)
	require.Equal(t, `"1m0s"`, string(bs))

	require.NoError(t, json.Unmarshal([]byte(`{"read_timeout": "90"}`), &h))
	require.Equal(t, Duration(90*time.Second), h.ReadTimeout)

	require.Error(t, json.Unmarshal([]byte(`{"read_timeout": "soon"}`), &h))
	require.Error(t, json.Unmarshal([]byte(`{"read_timeout": true}`), &h))
}
