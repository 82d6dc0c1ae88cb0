// Package load reads Avro schema files (.avsc).
//
// Files may reference named types defined in other files. Loading resolves
// them by retrying the files that failed to parse until every file parsed
// or a whole round made no progress, so input order does not matter.
package load

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hamba/avro/v2"

	"github.com/syssam/avrocompat"
)

// Ext is the schema file extension.
const Ext = ".avsc"

// Files parses the schema files at paths and returns their schemas in the
// same order.
func Files(paths ...string) ([]avro.Schema, error) {
	texts := make([]string, len(paths))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		texts[i] = string(b)
	}

	var (
		cache   = &avro.SchemaCache{}
		schemas = make([]avro.Schema, len(paths))
		pending = make([]int, len(paths))
		errs    = make(map[int]error)
	)
	for i := range pending {
		pending[i] = i
	}
	for len(pending) > 0 {
		var next []int
		for _, i := range pending {
			s, err := avro.ParseWithCache(texts[i], "", cache)
			if err != nil {
				errs[i] = err
				next = append(next, i)
				continue
			}
			delete(errs, i)
			schemas[i] = s
		}
		if len(next) == len(pending) {
			joined := make([]error, 0, len(next))
			for _, i := range next {
				joined = append(joined, avrocompat.NewSchemaError(paths[i], errs[i]))
			}
			return nil, errors.Join(joined...)
		}
		pending = next
	}
	return schemas, nil
}

// Dir parses every schema file under dir, in lexical path order.
func Dir(dir string) ([]avro.Schema, error) {
	paths, err := Paths(dir)
	if err != nil {
		return nil, err
	}
	return Files(paths...)
}

// Paths returns the schema files under dir, in lexical order.
func Paths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), Ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	slices.Sort(paths)
	return paths, nil
}
