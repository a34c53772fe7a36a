package switchboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("definitions load and layer", func(t *testing.T) {
		base := writeFile(t, "base.yaml", `
db_password: xyzzy
greeting: hello
`)
		override := writeFile(t, "override.yaml", `
greeting: bonjour
`)

		c := New()
		require.NoError(t, c.LoadFile(base))
		require.NoError(t, c.LoadFile(override))

		v, err := c.Get("greeting")
		require.NoError(t, err)
		assert.Equal(t, "bonjour", v)

		v, err = c.Get("db_password")
		require.NoError(t, err)
		assert.Equal(t, "xyzzy", v)
	})

	t.Run("references and factories work from yaml", func(t *testing.T) {
		path := writeFile(t, "services.yaml", `
url: sqlite:///x
db:
  ":": mod.makeEngine
  url: <url>
`)

		c := newTestContainer(t)
		require.NoError(t, c.LoadFile(path))

		db, err := Resolve[*engine](c, "db")
		require.NoError(t, err)
		assert.Equal(t, "sqlite:///x", db.URL)
	})

	t.Run("multi-document files merge in order", func(t *testing.T) {
		path := writeFile(t, "multi.yaml", `
x: first
---
x: second
`)

		c := New()
		require.NoError(t, c.LoadFile(path))

		v, err := c.Get("x")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("missing file fails", func(t *testing.T) {
		c := New()
		err := c.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

		var cfgErr ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("missing optional file is skipped", func(t *testing.T) {
		c := New()
		err := c.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), Optional())
		assert.NoError(t, err)
	})

	t.Run("optional does not hide parse errors", func(t *testing.T) {
		path := writeFile(t, "broken.yaml", "{unclosed")
		c := New()
		assert.Error(t, c.LoadFile(path, Optional()))
	})

	t.Run("non-mapping document fails", func(t *testing.T) {
		path := writeFile(t, "list.yaml", `
- just
- a
- list
`)
		c := New()
		err := c.LoadFile(path)

		var cfgErr ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.ErrorContains(t, err, "not a mapping")
	})
}

func TestLoadReader(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadReader(strings.NewReader("x: from-stream\n")))

	v, err := c.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "from-stream", v)
}
