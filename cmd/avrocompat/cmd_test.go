package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hamba/avro/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
	"github.com/syssam/avrocompat/compiler/bridge"
)

// fakeGenerator emits one class per named schema.
func fakeGenerator(_ context.Context, schemas []avro.Schema) ([]bridge.OutputFile, error) {
	var out []bridge.OutputFile
	for _, s := range schemas {
		n := s.(avro.NamedSchema)
		out = append(out, bridge.OutputFile{
			Path:     strings.ReplaceAll(n.Namespace(), ".", "/") + "/" + n.Name() + ".java",
			Contents: "package " + n.Namespace() + ";\n\n@org.apache.avro.specific.AvroGenerated\npublic class " + n.Name() + " {}\n",
		})
	}
	return out, nil
}

func writeSchema(t *testing.T, dir, name string) {
	t.Helper()
	s := `{"type":"record","name":"` + name + `","namespace":"com.acme","fields":[{"name":"id","type":"long"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, strings.ToLower(name)+".avsc"), []byte(s), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(adapter.WithBinding(bridge.Func(fakeGenerator)))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func readOut(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestCompileCommand(t *testing.T) {
	schemas := t.TempDir()
	writeSchema(t, schemas, "User")
	writeSchema(t, schemas, "Group")
	out := filepath.Join(t.TempDir(), "gen")

	stdout, err := execute(t, "compile", "--release", "1.7", "--target", "1.6", "--out", out, schemas)
	require.NoError(t, err)
	assert.Equal(t, "wrote 2 files to "+out+"\n", stdout)

	user := readOut(t, filepath.Join(out, "com", "acme", "User.java"))
	assert.Contains(t, user, "// @org.apache.avro.specific.AvroGenerated")
	assert.FileExists(t, filepath.Join(out, "com", "acme", "Group.java"))
}

func TestCompileCommandRawOutput(t *testing.T) {
	schemas := t.TempDir()
	writeSchema(t, schemas, "User")
	out := filepath.Join(t.TempDir(), "gen")

	_, err := execute(t, "compile", "--out", out, filepath.Join(schemas, "user.avsc"))
	require.NoError(t, err)
	user := readOut(t, filepath.Join(out, "com", "acme", "User.java"))
	assert.NotContains(t, user, "// @org.apache.avro.specific.AvroGenerated")
}

func TestCompileCommandErrors(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		_, err := execute(t, "compile")
		require.Error(t, err)
	})

	t.Run("invalid release", func(t *testing.T) {
		_, err := execute(t, "compile", "--release", "one", t.TempDir())
		require.Error(t, err)
	})

	t.Run("unregistered release", func(t *testing.T) {
		dir := t.TempDir()
		writeSchema(t, dir, "User")
		_, err := execute(t, "compile", "--release", "1.2", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no adapter registered")
	})

	t.Run("missing schema", func(t *testing.T) {
		_, err := execute(t, "compile", filepath.Join(t.TempDir(), "missing.avsc"))
		require.Error(t, err)
	})
}

func TestCompileCommandConfigFile(t *testing.T) {
	schemas := t.TempDir()
	writeSchema(t, schemas, "User")
	out := filepath.Join(t.TempDir(), "gen")
	config := filepath.Join(t.TempDir(), "avrocompat.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`release: "1.8"
target: "1.6"
out: `+out+`
workers: 2
releases:
  "1.8":
    jar: /opt/avro/avro-tools-1.8.2.jar
`), 0o644))

	_, err := execute(t, "compile", "--config", config, schemas)
	require.NoError(t, err)
	assert.Contains(t, readOut(t, filepath.Join(out, "com", "acme", "User.java")), "// @org.apache.avro.specific.AvroGenerated")

	// A flag overrides the file.
	_, err = execute(t, "compile", "--config", config, "--target", "1.8", schemas)
	require.NoError(t, err)
	assert.NotContains(t, readOut(t, filepath.Join(out, "com", "acme", "User.java")), "// @org.apache.avro.specific.AvroGenerated")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("full", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`java: /usr/bin/java
workers: 4
release: "1.7"
target: "1.4"
out: gen-src
releases:
  "1.7": { jar: /opt/avro/avro-tools-1.7.7.jar, workers: 2 }
`), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/java", cfg.Java)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, "1.7", cfg.Release)
		assert.Equal(t, "1.4", cfg.Target)
		assert.Equal(t, "gen-src", cfg.Out)
		assert.Equal(t, adapter.Config{CompilerJar: "/opt/avro/avro-tools-1.7.7.jar", Workers: 2}, cfg.Releases["1.7"])
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, &fileConfig{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte("relase: \"1.7\"\n"), 0o644))
		_, err := loadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "relase")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
	})
}

func TestEnumFlag(t *testing.T) {
	assert.Panics(t, func() { newEnumFlag() })

	f := newEnumFlag("text", "json")
	assert.Equal(t, "text", f.String())
	require.NoError(t, f.Set("json"))
	assert.Equal(t, "json", f.String())
	assert.Error(t, f.Set("xml"))
	assert.Equal(t, "json", f.String())
}

func TestLogFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	lf := registerLogFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-format", "json", "--log-level", "info"}))

	var buf bytes.Buffer
	logger := lf.logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "release", "1.7")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "1.7", rec["release"])

	assert.Error(t, fs.Parse([]string{"--log-level", "verbose"}))
}

func TestWatch(t *testing.T) {
	schemas := t.TempDir()
	writeSchema(t, schemas, "User")
	out := filepath.Join(t.TempDir(), "gen")

	s := &settings{
		release: avrocompat.Avro17,
		out:     out,
		workers: 1,
		adapter: []adapter.Option{adapter.WithBinding(bridge.Func(fakeGenerator))},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, s, []string{schemas}, &bytes.Buffer{}, discardLogger())
	}()

	userPath := filepath.Join(out, "com", "acme", "User.java")
	groupPath := filepath.Join(out, "com", "acme", "Group.java")
	require.Eventually(t, func() bool {
		_, err := os.Stat(userPath)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	writeSchema(t, schemas, "Group")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(groupPath)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchNewSubdirectory(t *testing.T) {
	schemas := t.TempDir()
	writeSchema(t, schemas, "User")
	out := filepath.Join(t.TempDir(), "gen")

	s := &settings{
		release: avrocompat.Avro17,
		out:     out,
		workers: 1,
		adapter: []adapter.Option{adapter.WithBinding(bridge.Func(fakeGenerator))},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, s, []string{schemas}, &bytes.Buffer{}, discardLogger())
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "com", "acme", "User.java"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	nested := filepath.Join(schemas, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	writeSchema(t, nested, "Group")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "com", "acme", "Group.java"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	// A later change inside the new directory is seen as well.
	writeSchema(t, nested, "Team")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "com", "acme", "Team.java"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	file := filepath.Join(t.TempDir(), "user.avsc")

	dirs := watchDirs([]string{root, file, root})
	assert.Equal(t, []string{root, filepath.Join(root, "nested"), filepath.Dir(file)}, dirs)
}

func TestIsSchemaEvent(t *testing.T) {
	assert.True(t, isSchemaEvent(fsnotify.Event{Name: "a/user.avsc", Op: fsnotify.Write}))
	assert.True(t, isSchemaEvent(fsnotify.Event{Name: "a/USER.AVSC", Op: fsnotify.Create}))
	assert.True(t, isSchemaEvent(fsnotify.Event{Name: "a/user.avsc", Op: fsnotify.Remove}))
	assert.False(t, isSchemaEvent(fsnotify.Event{Name: "a/user.avsc", Op: fsnotify.Chmod}))
	assert.False(t, isSchemaEvent(fsnotify.Event{Name: "a/User.java", Op: fsnotify.Write}))
}
