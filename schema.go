package avrocompat

import (
	"github.com/hamba/avro/v2"
)

// ParseWithKnown parses schemaJSON. Named references that the text does not
// define itself are resolved against known and every named type nested in
// them.
func ParseWithKnown(schemaJSON string, known []avro.Schema) (SchemaParseResult, error) {
	types := make(map[string]avro.NamedSchema)
	for _, s := range known {
		collectNamed(s, types)
	}
	cache := &avro.SchemaCache{}
	for name, s := range types {
		cache.Add(name, s)
	}
	main, err := avro.ParseWithCache(schemaJSON, "", cache)
	if err != nil {
		return SchemaParseResult{}, NewSchemaError("", err)
	}
	collectNamed(main, types)
	return SchemaParseResult{Main: main, Types: types}, nil
}

// NamedTypes returns every named type reachable from s, keyed by full name.
func NamedTypes(s avro.Schema) map[string]avro.NamedSchema {
	types := make(map[string]avro.NamedSchema)
	collectNamed(s, types)
	return types
}

func collectNamed(s avro.Schema, into map[string]avro.NamedSchema) {
	switch s := s.(type) {
	case *avro.RefSchema:
		collectNamed(s.Schema(), into)
	case *avro.RecordSchema:
		if _, ok := into[s.FullName()]; ok {
			return
		}
		into[s.FullName()] = s
		for _, f := range s.Fields() {
			collectNamed(f.Type(), into)
		}
	case *avro.ArraySchema:
		collectNamed(s.Items(), into)
	case *avro.MapSchema:
		collectNamed(s.Values(), into)
	case *avro.UnionSchema:
		for _, t := range s.Types() {
			collectNamed(t, into)
		}
	case avro.NamedSchema:
		into[s.FullName()] = s
	}
}

// ParsingForm returns the Parsing Canonical Form of s.
func ParsingForm(s avro.Schema) string {
	return s.String()
}

// Fingerprint returns the CRC-64-AVRO fingerprint of the canonical form of s.
func Fingerprint(s avro.Schema) ([]byte, error) {
	fp, err := s.FingerprintUsing(avro.CRC64Avro)
	if err != nil {
		return nil, NewSchemaError(fullName(s), err)
	}
	return fp, nil
}

func fullName(s avro.Schema) string {
	if n, ok := s.(avro.NamedSchema); ok {
		return n.FullName()
	}
	return ""
}
