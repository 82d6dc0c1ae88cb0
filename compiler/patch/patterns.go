package patch

import "regexp"

// The pattern catalog. Every matcher is anchored on text the Avro
// SpecificCompiler emits verbatim; none of them understands Java syntax
// beyond that.
var (
	// packagePattern locates the package declaration.
	// Captures: 1 package name.
	packagePattern = regexp.MustCompile(`package\s+(.*);`)

	// fixedSizePattern is the trigger for fixed classes.
	// Captures: 1 declared size (unparsed).
	fixedSizePattern = regexp.MustCompile(`@org\.apache\.avro\.specific\.FixedSize\((.*)\)`)

	// fixedClassPattern locates a fixed class header. Required once
	// fixedSizePattern matched.
	// Captures: 1 class name.
	fixedClassPattern = regexp.MustCompile(`public class (\w+) extends org\.apache\.avro\.specific\.SpecificFixed `)

	// enumTriggerPattern is the trigger for enum classes; the splice point
	// is its end.
	// Captures: 1 enum name.
	enumTriggerPattern = regexp.MustCompile(`public enum (\w+) `)

	// enumDeclPattern locates a 1.4 style enum body with the symbols on a
	// single line. Required once enumTriggerPattern matched.
	// Captures: 1 enum name, 2 symbol list.
	enumDeclPattern = regexp.MustCompile(`public enum (\w+) \{\s*[\n\r]\s*(.*)\s*[\n\r]}`)

	// symbolSeparator splits an enum symbol list.
	symbolSeparator = regexp.MustCompile(`\s*,\s*`)

	// blockCommentPattern locates /* */ and /** */ comments.
	// Captures: 1 comment text without delimiters.
	blockCommentPattern = regexp.MustCompile(`(?s)/\*+\s*(.*?)\s*\*+/`)

	// declarationGap matches what may sit between a doc comment and the
	// declaration it documents: whitespace and annotations.
	declarationGap = regexp.MustCompile(`^\s*(@[\w.]+(\([^)]*\))?\s*)*$`)

	// docUnsafeChars are characters that would need escaping inside a
	// schema string literal.
	docUnsafeChars = regexp.MustCompile(`["'\t\n\r]`)

	// generatedAnnotationPattern locates the provenance annotation added in 1.7.
	generatedAnnotationPattern = regexp.MustCompile(regexp.QuoteMeta("@org.apache.avro.specific.AvroGenerated"))

	// writeExternalPattern and readExternalPattern locate the Externalizable
	// callbacks generated by 1.8.
	writeExternalPattern = regexp.MustCompile(regexp.QuoteMeta("@Override public void writeExternal(java.io.ObjectOutput out)"))
	readExternalPattern  = regexp.MustCompile(regexp.QuoteMeta("@Override public void readExternal(java.io.ObjectInput in)"))

	// encoderFactoryPattern and decoderFactoryPattern locate the internal
	// factory calls the 1.8 Externalizable support relies on.
	encoderFactoryPattern = regexp.MustCompile(regexp.QuoteMeta("org.apache.avro.specific.SpecificData.getEncoder(out)"))
	decoderFactoryPattern = regexp.MustCompile(regexp.QuoteMeta("org.apache.avro.specific.SpecificData.getDecoder(in)"))

	// parseCallPattern locates the legacy single literal parse call.
	// Captures: 1 literal body without quotes.
	parseCallPattern = regexp.MustCompile(regexp.QuoteMeta("org.apache.avro.Schema.parse(") + `"(.*)"\);`)

	// parserCallPattern locates the 1.5+ parser call, which 1.7+ emits with
	// one or more literal arguments.
	// Captures: 1 argument list without the outer quotes, 2 line break.
	parserCallPattern = regexp.MustCompile(regexp.QuoteMeta("new org.apache.avro.Schema.Parser().parse(") + `"(.*)"\);([\r\n]+)`)

	// argumentSeparator locates a `","` between two literal arguments.
	// Candidates preceded by a backslash are escaped quotes, not
	// separators; see splitArguments.
	argumentSeparator = regexp.MustCompile(`","`)

	// builderStartPattern locates the javadoc opening the builder section.
	builderStartPattern = regexp.MustCompile(`/\*\*([\s*])*Creates a new \w+ RecordBuilder`)

	// externalizableStartPattern locates the serialization support section,
	// which follows the builder section in 1.8 output.
	externalizableStartPattern = regexp.MustCompile(regexp.QuoteMeta("private static final org.apache.avro.io.DatumWriter"))

	// superBytesPattern locates the byte[] constructor delegation.
	superBytesPattern = regexp.MustCompile(regexp.QuoteMeta("super(bytes);"))

	// catchExceptionPattern locates unqualified catch clauses in builders.
	catchExceptionPattern = regexp.MustCompile(regexp.QuoteMeta("catch (Exception e)"))

	// schemaFieldPattern detects classes that already carry SCHEMA$.
	schemaFieldPattern = regexp.MustCompile(`public static final org\.apache\.avro\.Schema SCHEMA\$`)
)
