// Package gen runs a release's Java code generator and rewrites its output
// so that it compiles and runs against older Avro releases.
//
// # Pipeline
//
// Compile follows a fixed sequence:
//
//	first schema → NewCompiler
//	        ↓
//	remaining schemas → Enqueue
//	        ↓
//	SpecificCompiler.Compile → []GeneratedFile
//	        ↓
//	target set? → Transform (patch passes, in parallel per file)
//
// # Passes
//
// Each Pass wraps one rule from package patch together with the releases it
// is selected for. Pipeline returns the passes for a generator release and a
// minimum target release, always in AllPasses order:
//
//	generator  target  passes
//	1.4        any     fixed-support, enum-schema, split-parse-calls
//	1.5, 1.6   < 1.6   remove-builder
//	1.5, 1.6   < 1.5   fix-byte-array-constructor, split-parse-calls
//	1.7, 1.8   any     qualify-catch
//	1.7, 1.8   < 1.7   strip-generated-annotation
//	1.7, 1.8   < 1.6   remove-builder
//	1.8        < 1.8   backport-externalizable
//	1.7, 1.8   < 1.5   normalize-parser-calls, fix-byte-array-constructor, split-parse-calls
//
// # Errors
//
// An *avrocompat.UnsupportedError from the generator binding is returned
// unchanged. Any other failure is a *GenerationError naming the phase, file
// and pass, wrapped in an *avrocompat.InternalError.
package gen
