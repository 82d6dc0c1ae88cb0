package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateSelection(t *testing.T) {
	assert.Equal(t, Fixed, FixedTemplate(true))
	assert.Equal(t, FixedNoNamespace, FixedTemplate(false))
	assert.Equal(t, Enum, EnumTemplate(true))
	assert.Equal(t, EnumNoNamespace, EnumTemplate(false))
	assert.ElementsMatch(t, []string{Fixed, FixedNoNamespace, Enum, EnumNoNamespace}, Names())
}

func TestFillFixed(t *testing.T) {
	params := Params{
		"name":      "Whatever",
		"namespace": "com.acme",
		"size":      "42",
		"doc":       "yadda (auto-generated for avro compatibility)",
		"helper":    "com.acme.Helper",
	}

	t.Run("namespaced", func(t *testing.T) {
		out, err := Fill(Fixed, params)
		require.NoError(t, err)
		assert.Contains(t, out, `{\"type\":\"fixed\",\"name\":\"Whatever\",\"namespace\":\"com.acme\",\"size\":42,\"doc\":\"yadda (auto-generated for avro compatibility)\"}`)
		assert.Contains(t, out, "public Whatever(byte[] bytes) {")
		assert.Contains(t, out, "com.acme.Helper.newBinaryEncoder(out)")
		assert.NotContains(t, out, "<no value>")
	})

	t.Run("without namespace", func(t *testing.T) {
		out, err := Fill(FixedNoNamespace, params)
		require.NoError(t, err)
		assert.NotContains(t, out, "namespace")
		assert.Contains(t, out, `\"size\":42,`)
	})

	t.Run("absent doc omits section", func(t *testing.T) {
		p := Params{"name": "W", "size": "1", "helper": "H"}
		out, err := Fill(FixedNoNamespace, p)
		require.NoError(t, err)
		assert.Contains(t, out, `\"size\":1}");`)
		assert.NotContains(t, out, "doc")
	})

	t.Run("empty doc omits section", func(t *testing.T) {
		p := Params{"name": "W", "size": "1", "helper": "H", "doc": ""}
		out, err := Fill(FixedNoNamespace, p)
		require.NoError(t, err)
		assert.NotContains(t, out, `\"doc\"`)
	})

	t.Run("missing required placeholder", func(t *testing.T) {
		_, err := Fill(Fixed, Params{"name": "W", "size": "1", "helper": "H"})
		assert.Error(t, err)
	})
}

func TestFillEnum(t *testing.T) {
	out, err := Fill(Enum, Params{
		"name":          "BobSmith",
		"namespace":     "com.dot",
		"symbols":       "Bread, Butter, Jam",
		"symbol_string": `\"Bread\",\"Butter\",\"Jam\"`,
		"doc":           "Bob Smith Store",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "  Bread, Butter, Jam;\n")
	assert.Contains(t, out, `\"symbols\":[\"Bread\",\"Butter\",\"Jam\"],\"doc\":\"Bob Smith Store\"}`)
}

func TestFillUnknown(t *testing.T) {
	_, err := Fill("nope.tmpl", nil)
	assert.Error(t, err)
}
