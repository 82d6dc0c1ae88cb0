package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hamba/avro/v2"

	"github.com/syssam/avrocompat"
)

// JarBinding runs the code generator shipped in a release's avro-tools jar:
//
//	java -jar avro-tools-<release>.jar compile schema <input> <output>
type JarBinding struct {
	release avrocompat.Version
	java    string
	jar     string
	logger  *slog.Logger
}

// Bind resolves the java executable and checks the avro-tools jar for
// release. An empty java means "java" on PATH. Any failure is returned as an
// *avrocompat.UnsupportedError: the release has no usable generator here.
func Bind(release avrocompat.Version, java, jar string, logger *slog.Logger) (*JarBinding, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if java == "" {
		java = "java"
	}
	path, err := exec.LookPath(java)
	if err != nil {
		return nil, avrocompat.NewUnsupportedError(release, "compile", fmt.Sprintf("java executable: %v", err))
	}
	if jar == "" {
		return nil, avrocompat.NewUnsupportedError(release, "compile", "no avro-tools jar configured")
	}
	info, err := os.Stat(jar)
	if err != nil {
		return nil, avrocompat.NewUnsupportedError(release, "compile", fmt.Sprintf("avro-tools jar: %v", err))
	}
	if info.IsDir() {
		return nil, avrocompat.NewUnsupportedError(release, "compile", fmt.Sprintf("avro-tools jar: %s is a directory", jar))
	}
	logger.Debug("bound avro-tools", "release", release.String(), "java", path, "jar", jar)
	return &JarBinding{release: release, java: path, jar: jar, logger: logger}, nil
}

// NewCompiler implements Binding.
func (b *JarBinding) NewCompiler(first avro.Schema) (SpecificCompiler, error) {
	c := &jarCompiler{binding: b, seen: make(map[string]bool)}
	if err := c.Enqueue(first); err != nil {
		return nil, err
	}
	return c, nil
}

type jarCompiler struct {
	binding *JarBinding
	schemas []avro.Schema
	seen    map[string]bool
}

// Enqueue ignores a named schema that was already enqueued.
func (c *jarCompiler) Enqueue(schema avro.Schema) error {
	if schema == nil {
		return errors.New("bridge: nil schema")
	}
	if n, ok := schema.(avro.NamedSchema); ok {
		if c.seen[n.FullName()] {
			return nil
		}
		c.seen[n.FullName()] = true
	}
	c.schemas = append(c.schemas, schema)
	return nil
}

func (c *jarCompiler) Compile(ctx context.Context) ([]OutputFile, error) {
	dir, err := os.MkdirTemp("", "avrocompat-*")
	if err != nil {
		return nil, fmt.Errorf("bridge: create work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	input, err := writeInput(filepath.Join(dir, "in"), c.schemas)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(dir, "out")
	args := []string{"-jar", c.binding.jar, "compile", "schema", input, out}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binding.java, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	c.binding.logger.Debug("running avro-tools", "release", c.binding.release.String(), "schemas", len(c.schemas))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("bridge: avro-tools %s: %w: %s", c.binding.release, err, bytes.TrimSpace(output.Bytes()))
	}
	return readOutputs(out)
}

// writeInput writes the schemas to a single .avsc file and returns its path.
// One schema is written as is, several as a top-level union. Every named type
// is defined once; later occurrences refer to it by full name, since the
// generator's parser rejects a redefinition.
func writeInput(dir string, schemas []avro.Schema) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("bridge: create input directory: %w", err)
	}
	defined := make(map[string]bool)
	var members []any
	for i, s := range schemas {
		b, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("bridge: marshal schema %d: %w", i, err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return "", fmt.Errorf("bridge: decode schema %d: %w", i, err)
		}
		v = defineOnce(v, "", defined)
		if u, ok := v.([]any); ok {
			members = append(members, u...)
		} else {
			members = append(members, v)
		}
	}
	members = dedupeRefs(members)

	var input any = members
	if len(members) == 1 {
		input = members[0]
	}
	b, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("bridge: marshal input: %w", err)
	}
	path := filepath.Join(dir, "input.avsc")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("bridge: write input: %w", err)
	}
	return path, nil
}

// defineOnce walks a decoded schema and replaces every named type already in
// defined with its full name. namespace is the enclosing namespace.
func defineOnce(v any, namespace string, defined map[string]bool) any {
	switch v := v.(type) {
	case []any:
		for i, m := range v {
			v[i] = defineOnce(m, namespace, defined)
		}
		return v
	case map[string]any:
		switch typ := v["type"].(type) {
		case string:
			switch typ {
			case "record", "error", "enum", "fixed":
				name := namedFullName(v, namespace)
				if defined[name] {
					return name
				}
				defined[name] = true
				fields, _ := v["fields"].([]any)
				for _, f := range fields {
					if f, ok := f.(map[string]any); ok {
						f["type"] = defineOnce(f["type"], namespaceOf(name), defined)
					}
				}
			case "array":
				if items, ok := v["items"]; ok {
					v["items"] = defineOnce(items, namespace, defined)
				}
			case "map":
				if values, ok := v["values"]; ok {
					v["values"] = defineOnce(values, namespace, defined)
				}
			}
		case map[string]any, []any:
			v["type"] = defineOnce(typ, namespace, defined)
		}
		return v
	default:
		return v
	}
}

// dedupeRefs drops union members that repeat an earlier reference.
func dedupeRefs(members []any) []any {
	seen := make(map[string]bool)
	out := members[:0]
	for _, m := range members {
		if ref, ok := m.(string); ok {
			if seen[ref] {
				continue
			}
			seen[ref] = true
		}
		out = append(out, m)
	}
	return out
}

func namedFullName(v map[string]any, namespace string) string {
	name, _ := v["name"].(string)
	if strings.Contains(name, ".") {
		return name
	}
	if ns, ok := v["namespace"].(string); ok {
		namespace = ns
	}
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

func namespaceOf(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[:i]
	}
	return ""
}

// readOutputs returns every regular file under dir, sorted by path.
func readOutputs(dir string) ([]OutputFile, error) {
	var files []OutputFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, OutputFile{Path: filepath.ToSlash(rel), Contents: string(b)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: read generated files: %w", err)
	}
	slices.SortFunc(files, func(a, b OutputFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}
