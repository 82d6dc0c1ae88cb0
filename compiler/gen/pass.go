package gen

import (
	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/compiler/patch"
)

var (
	// PassFixedSupport synthesizes schema support for bare fixed classes.
	PassFixedSupport = Pass{
		Name:        patch.RuleFixedSupport,
		Description: "Adds SCHEMA$, constructors and Externalizable support to 1.4 fixed classes",
		When:        []When{{From: avrocompat.Avro14, To: avrocompat.Avro14}},
		Rule:        patch.AddFixedSupport,
	}

	// PassEnumSchema synthesizes schema support for bare enums.
	PassEnumSchema = Pass{
		Name:        patch.RuleEnumSchema,
		Description: "Adds SCHEMA$ and getClassSchema() to 1.4 enums",
		When:        []When{{From: avrocompat.Avro14, To: avrocompat.Avro14}},
		Rule:        patch.AddEnumSchema,
	}

	// PassQualifyCatch protects catch clauses from generated types named
	// Exception.
	PassQualifyCatch = Pass{
		Name:        patch.RuleQualifyCatch,
		Description: "Fully qualifies java.lang.Exception in catch clauses",
		When:        []When{{From: avrocompat.Avro17, To: avrocompat.Avro18}},
		Rule:        patch.QualifyCatchClauses,
	}

	// PassStripGenerated comments out the provenance annotation.
	PassStripGenerated = Pass{
		Name:        patch.RuleStripGenerated,
		Description: "Comments out @AvroGenerated, which releases before 1.7 do not define",
		When:        []When{{From: avrocompat.Avro17, To: avrocompat.Avro18, Before: avrocompat.Avro17}},
		Rule:        patch.StripGeneratedAnnotation,
	}

	// PassRemoveBuilder excises record builders.
	PassRemoveBuilder = Pass{
		Name:        patch.RuleRemoveBuilder,
		Description: "Removes record builders, which need RecordBuilderBase from 1.6",
		When:        []When{{From: avrocompat.Avro15, To: avrocompat.Avro18, Before: avrocompat.Avro16}},
		Rule:        patch.RemoveBuilderSupport,
	}

	// PassBackportExternalizable makes 1.8 Externalizable support portable.
	PassBackportExternalizable = Pass{
		Name:        patch.RuleBackportExternalizable,
		Description: "Routes writeExternal/readExternal through the compatibility helper",
		When:        []When{{From: avrocompat.Avro18, To: avrocompat.Avro18, Before: avrocompat.Avro18}},
		Rule:        patch.BackportExternalizable,
	}

	// PassNormalizeParserCalls restores the single-argument Schema.parse form.
	PassNormalizeParserCalls = Pass{
		Name:        patch.RuleNormalizeParserCalls,
		Description: "Rewrites new Schema.Parser().parse(...) into Schema.parse(...)",
		When:        []When{{From: avrocompat.Avro17, To: avrocompat.Avro18, Before: avrocompat.Avro15}},
		Rule:        patch.NormalizeParserCalls,
	}

	// PassFixByteArrayCtor rewrites super(bytes) in fixed constructors.
	PassFixByteArrayCtor = Pass{
		Name:        patch.RuleFixByteArrayCtor,
		Description: "Replaces super(bytes) with super() followed by bytes(bytes)",
		When:        []When{{From: avrocompat.Avro15, To: avrocompat.Avro18, Before: avrocompat.Avro15}},
		Rule:        patch.FixByteArrayConstructor,
	}

	// PassSplitParseCalls splits schema literals too large for javac.
	PassSplitParseCalls = Pass{
		Name:        patch.RuleSplitParseCalls,
		Description: "Splits schema literals over the class file constant limit",
		When: []When{
			{From: avrocompat.Avro14, To: avrocompat.Avro14},
			{From: avrocompat.Avro15, To: avrocompat.Avro18, Before: avrocompat.Avro15},
		},
		Rule: patch.SplitLargeParseCalls,
	}

	// AllPasses lists every pass in application order. Normalization runs
	// before splitting so that split literals are never re-joined.
	AllPasses = []Pass{
		PassFixedSupport,
		PassEnumSchema,
		PassQualifyCatch,
		PassStripGenerated,
		PassRemoveBuilder,
		PassBackportExternalizable,
		PassNormalizeParserCalls,
		PassFixByteArrayCtor,
		PassSplitParseCalls,
	}
)

// Pass is a named rewrite applied to generated source.
type Pass struct {
	// Name of the pass, used in logs and errors.
	Name string

	// Description of the pass.
	Description string

	// When lists the conditions under which the pass runs. The pass runs if
	// any of them holds.
	When []When

	// Rule is the rewrite.
	Rule patch.Rule
}

// When selects a pass by the release that generated the code and the
// minimum release the code must run on.
type When struct {
	// From and To bound the generating release, inclusive.
	From, To avrocompat.Version

	// Before, if set, restricts the pass to targets earlier than it.
	Before avrocompat.Version
}

// Matches reports whether w holds for generator and target.
func (w When) Matches(generator, target avrocompat.Version) bool {
	if generator.EarlierThan(w.From) || w.To.EarlierThan(generator) {
		return false
	}
	return w.Before.IsZero() || target.EarlierThan(w.Before)
}

// Applies reports whether p runs for code generated by generator that must
// run on target.
func (p Pass) Applies(generator, target avrocompat.Version) bool {
	for _, w := range p.When {
		if w.Matches(generator, target) {
			return true
		}
	}
	return false
}

// Pipeline returns the passes, in order, that make code generated by
// generator usable on target. A zero target yields no passes.
func Pipeline(generator, target avrocompat.Version) []Pass {
	if target.IsZero() {
		return nil
	}
	var passes []Pass
	for _, p := range AllPasses {
		if p.Applies(generator, target) {
			passes = append(passes, p)
		}
	}
	return passes
}

// Names returns the names of passes.
func Names(passes []Pass) []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name
	}
	return names
}
