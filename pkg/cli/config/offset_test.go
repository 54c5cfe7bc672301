package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/localstamp/pkg/cli/config"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "localstamp.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestOffset_LoadFile(t *testing.T) {
	t.Run("file supplies offset", func(t *testing.T) {
		cfg := &config.Offset{ConfigPath: writeConfig(t, "offset = \"+05:30\"\nno_command = true\n")}
		gt.NoError(t, cfg.LoadFile())
		gt.Equal(t, cfg.Value, "+05:30")
		gt.True(t, cfg.NoCommand)
		gt.True(t, cfg.Pinned())
	})

	t.Run("flag wins over file", func(t *testing.T) {
		cfg := &config.Offset{
			Value:      "-02:00",
			ConfigPath: writeConfig(t, "offset = \"+05:30\"\n"),
		}
		gt.NoError(t, cfg.LoadFile())
		gt.Equal(t, cfg.Value, "-02:00")
		gt.False(t, cfg.NoCommand)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &config.Offset{ConfigPath: filepath.Join(t.TempDir(), "nope.toml")}
		gt.Error(t, cfg.LoadFile())
	})

	t.Run("broken file", func(t *testing.T) {
		cfg := &config.Offset{ConfigPath: writeConfig(t, "offset = ")}
		gt.Error(t, cfg.LoadFile())
	})

	t.Run("no file", func(t *testing.T) {
		cfg := &config.Offset{}
		gt.NoError(t, cfg.LoadFile())
		gt.False(t, cfg.Pinned())
	})
}

func TestOffset_Configure(t *testing.T) {
	t.Run("pinned offset is stored", func(t *testing.T) {
		cfg := &config.Offset{Value: "+0900"}
		store, err := cfg.Configure()
		gt.NoError(t, err)

		o, err := store.GlobalOffset()
		gt.NoError(t, err)
		gt.Equal(t, o.String(), "+09:00")

		o, warns := store.UTCOffset(context.Background())
		gt.Equal(t, o.String(), "+09:00")
		gt.Equal(t, len(warns), 0)

		o, err = store.Detect(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, o.String(), "+09:00")
		gt.Equal(t, cfg.Detector().Name(), "chain(fixed,zone,command)")
	})

	t.Run("invalid pinned offset", func(t *testing.T) {
		cfg := &config.Offset{Value: "JST"}
		_, err := cfg.Configure()
		gt.True(t, errors.Is(err, model.ErrInvalidOffsetString))
	})

	t.Run("unpinned store is uninitialized", func(t *testing.T) {
		cfg := &config.Offset{NoCommand: true}
		store, err := cfg.Configure()
		gt.NoError(t, err)

		_, err = store.GlobalOffset()
		gt.True(t, errors.Is(err, model.ErrUninitialized))
		gt.Equal(t, cfg.Detector().Name(), "chain(zone)")
	})
}
