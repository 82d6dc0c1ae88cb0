// Package avrocompat lets one program produce and consume Avro data and
// generated Java source that work across Avro releases 1.4 through 1.8.
//
// The package defines the release-neutral Adapter interface, the Version
// ordering used to pick a minimum target release, and the value types shared
// by the adapters: GeneratedFile, SchemaParseResult, EnumSymbol, Fixed and the
// JSON encoder and decoder. Release-specific adapters live under adapter/,
// and the code generation pipeline that rewrites generated Java source lives
// under compiler/.
//
// Basic usage:
//
//	a, err := avro17.New(adapter.WithCompilerJar("/opt/avro/avro-tools-1.7.7.jar"))
//	if err != nil {
//		return err
//	}
//	files, err := a.Compile(ctx, schemas, avrocompat.Avro14)
package avrocompat
