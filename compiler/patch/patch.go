package patch

import (
	"strconv"
	"strings"

	"github.com/syssam/avrocompat/compiler/split"
	"github.com/syssam/avrocompat/compiler/tmpl"
)

const (
	// MaxLiteralSize is the largest schema literal left in place. Java caps
	// a string constant at 65535 bytes of modified UTF-8.
	MaxLiteralSize = 65000

	// CompatibilityHelper is the Java class patched code calls instead of
	// release-specific encoder and decoder factories.
	CompatibilityHelper = "com.linkedin.avro.compatibility.AvroCompatibilityHelper"

	provenance = "auto-generated for avro compatibility"
)

// Rule names, used in errors and logs.
const (
	RuleFixedSupport           = "fixed-support"
	RuleEnumSchema             = "enum-schema"
	RuleSplitParseCalls        = "split-parse-calls"
	RuleNormalizeParserCalls   = "normalize-parser-calls"
	RuleStripGenerated         = "strip-generated-annotation"
	RuleRemoveBuilder          = "remove-builder"
	RuleBackportExternalizable = "backport-externalizable"
	RuleFixByteArrayCtor       = "fix-byte-array-constructor"
	RuleQualifyCatch           = "qualify-catch"
)

// Rule rewrites one generated source file. A rule returns its input unchanged
// when its trigger pattern is absent.
type Rule func(code string) (string, error)

// Chain composes rules left to right, stopping at the first error.
func Chain(rules ...Rule) Rule {
	return func(code string) (string, error) {
		var err error
		for _, r := range rules {
			if code, err = r(code); err != nil {
				return "", err
			}
		}
		return code, nil
	}
}

// AddFixedSupport adds SCHEMA$, getSchema(), constructors and Externalizable
// support to a bare fixed class as generated by avro 1.4. Everything after
// the class header is replaced by the rendered template.
func AddFixedSupport(code string) (string, error) {
	size := fixedSizePattern.FindStringSubmatch(code)
	if size == nil || schemaFieldPattern.MatchString(code) {
		return code, nil
	}
	class := fixedClassPattern.FindStringSubmatchIndex(code)
	if class == nil {
		return "", NewMismatchError(RuleFixedSupport, "no fixed class declaration after "+size[0])
	}
	n, err := strconv.Atoi(strings.TrimSpace(size[1]))
	if err != nil {
		return "", NewFormatError(RuleFixedSupport, size[0], err)
	}
	pkg := packageName(code)
	params := tmpl.Params{
		"name":   code[class[2]:class[3]],
		"size":   strconv.Itoa(n),
		"doc":    documentation(code, class[0], ""),
		"helper": CompatibilityHelper,
	}
	if pkg != "" {
		params["namespace"] = pkg
	}
	body, err := tmpl.Fill(tmpl.FixedTemplate(pkg != ""), params)
	if err != nil {
		return "", NewFormatError(RuleFixedSupport, "template", err)
	}
	return code[:class[1]] + body, nil
}

// AddEnumSchema adds SCHEMA$ and getClassSchema() to a bare enum as generated
// by avro 1.4.
func AddEnumSchema(code string) (string, error) {
	trigger := enumTriggerPattern.FindStringIndex(code)
	if trigger == nil || schemaFieldPattern.MatchString(code) {
		return code, nil
	}
	decl := enumDeclPattern.FindStringSubmatchIndex(code)
	if decl == nil {
		return "", NewMismatchError(RuleEnumSchema, "no enum declaration with a symbol list")
	}
	symbols := strings.TrimSpace(code[decl[4]:decl[5]])
	quoted := symbolSeparator.Split(symbols, -1)
	for i, s := range quoted {
		quoted[i] = `\"` + s + `\"`
	}
	pkg := packageName(code)
	params := tmpl.Params{
		"name":          code[decl[2]:decl[3]],
		"symbols":       symbols,
		"symbol_string": strings.Join(quoted, ","),
		"doc":           documentation(code, decl[0], " "),
	}
	if pkg != "" {
		params["namespace"] = pkg
	}
	body, err := tmpl.Fill(tmpl.EnumTemplate(pkg != ""), params)
	if err != nil {
		return "", NewFormatError(RuleEnumSchema, "template", err)
	}
	return code[:trigger[1]] + body, nil
}

// SplitLargeParseCalls replaces a Schema.parse literal longer than
// MaxLiteralSize with a StringBuilder chain assembling the same text at
// runtime (AVRO-1316).
func SplitLargeParseCalls(code string) (string, error) {
	m := parseCallPattern.FindStringSubmatchIndex(code)
	if m == nil {
		return code, nil
	}
	literal := code[m[2]:m[3]]
	if len(literal) <= MaxLiteralSize {
		return code, nil
	}
	chunks, err := split.Split(literal, MaxLiteralSize)
	if err != nil {
		return "", NewFormatError(RuleSplitParseCalls, "schema literal", err)
	}
	return code[:m[0]] + "org.apache.avro.Schema.parse(" + builderExpression(chunks) + ");" + code[m[1]:], nil
}

// NormalizeParserCalls rewrites new Schema.Parser().parse(...) into the
// Schema.parse(...) form avro 1.4 understands. Several literal arguments are
// collapsed into one StringBuilder chain; a single one stays a plain literal.
//
// Arguments are split on `","` unless the first quote is escaped. A literal
// that itself contains an unescaped `","` is split there too; generated
// schema literals always escape their quotes, so this does not occur in
// practice.
func NormalizeParserCalls(code string) (string, error) {
	m := parserCallPattern.FindStringSubmatchIndex(code)
	if m == nil {
		return code, nil
	}
	args := splitArguments(code[m[2]:m[3]])
	lineBreak := code[m[4]:m[5]]
	arg := `"` + args[0] + `"`
	if len(args) > 1 {
		arg = builderExpression(args)
	}
	return code[:m[0]] + "org.apache.avro.Schema.parse(" + arg + ");" + lineBreak + code[m[1]:], nil
}

// StripGeneratedAnnotation comments out @AvroGenerated, which does not exist
// before avro 1.7.
func StripGeneratedAnnotation(code string) (string, error) {
	return generatedAnnotationPattern.ReplaceAllLiteralString(code, "// @org.apache.avro.specific.AvroGenerated"), nil
}

// RemoveBuilderSupport removes the generated RecordBuilder, whose base class
// does not exist before avro 1.6. When serialization support follows the
// builder (avro 1.8), only the span in between is removed; otherwise the
// builder runs to the end of the class and the class is closed where it
// started.
func RemoveBuilderSupport(code string) (string, error) {
	start := builderStartPattern.FindStringIndex(code)
	if start == nil {
		return code, nil
	}
	end := externalizableStartPattern.FindStringIndex(code)
	if end == nil {
		return code[:start[0]] + "\n}", nil
	}
	if end[0] <= start[0] {
		return "", NewMismatchError(RuleRemoveBuilder, "serialization support precedes builder support")
	}
	return code[:start[0]] + code[end[0]:], nil
}

// BackportExternalizable makes the Externalizable support generated by avro
// 1.8 compile against older runtimes: SpecificFixed is not Externalizable
// there, and SpecificData has no encoder/decoder factories.
func BackportExternalizable(code string) (string, error) {
	code = writeExternalPattern.ReplaceAllLiteralString(code, "public void writeExternal(java.io.ObjectOutput out)")
	code = readExternalPattern.ReplaceAllLiteralString(code, "public void readExternal(java.io.ObjectInput in)")
	code = encoderFactoryPattern.ReplaceAllLiteralString(code, CompatibilityHelper+".newBinaryEncoder(out)")
	code = decoderFactoryPattern.ReplaceAllLiteralString(code, CompatibilityHelper+".newBinaryDecoder(in)")
	return code, nil
}

// FixByteArrayConstructor replaces super(bytes) with an explicit bytes()
// call; the 1.4 SpecificFixed has no byte[] constructor.
func FixByteArrayConstructor(code string) (string, error) {
	return superBytesPattern.ReplaceAllLiteralString(code, "super();\n    bytes(bytes);"), nil
}

// QualifyCatchClauses fully qualifies Exception in catch clauses so that a
// generated type named Exception does not shadow it.
func QualifyCatchClauses(code string) (string, error) {
	return catchExceptionPattern.ReplaceAllLiteralString(code, "catch (java.lang.Exception e)"), nil
}

func packageName(code string) string {
	if m := packagePattern.FindStringSubmatch(code); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// documentation returns the sanitized doc comment directly preceding the
// declaration at declStart, suffixed with the provenance marker. Characters
// that would need escaping are replaced by unsafe.
func documentation(code string, declStart int, unsafe string) string {
	comments := blockCommentPattern.FindAllStringSubmatchIndex(code[:declStart], -1)
	if len(comments) == 0 {
		return provenance
	}
	last := comments[len(comments)-1]
	if !declarationGap.MatchString(code[last[1]:declStart]) {
		return provenance
	}
	doc := docUnsafeChars.ReplaceAllLiteralString(code[last[2]:last[3]], unsafe)
	return doc + " (" + provenance + ")"
}

func builderExpression(literals []string) string {
	var b strings.Builder
	b.WriteString("new StringBuilder()")
	for _, l := range literals {
		b.WriteString(`.append("`)
		b.WriteString(l)
		b.WriteString(`")`)
	}
	b.WriteString(".toString()")
	return b.String()
}

func splitArguments(args string) []string {
	var parts []string
	start, pos := 0, 0
	for {
		loc := argumentSeparator.FindStringIndex(args[pos:])
		if loc == nil {
			break
		}
		at := pos + loc[0]
		if at > 0 && args[at-1] == '\\' {
			pos = at + 1
			continue
		}
		parts = append(parts, args[start:at])
		start = at + loc[1] - loc[0]
		pos = start
	}
	return append(parts, args[start:])
}
