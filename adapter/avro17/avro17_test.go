package avro17

import (
	"context"
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
	"github.com/syssam/avrocompat/compiler/bridge"
)

const enumClass = `package com.acme;
@SuppressWarnings("all")
@org.apache.avro.specific.AvroGenerated
public enum Color {
  RED, GREEN  ;
  public static final org.apache.avro.Schema SCHEMA$ = new org.apache.avro.Schema.Parser().parse("{\"type\":\"enum\",\"name\":\"Color\",\"namespace\":\"com.acme\",\"symbols\":[\"RED\",\"GREEN\"]}");
  public static org.apache.avro.Schema getClassSchema() { return SCHEMA$; }
}
`

func TestCompileNormalizesParserCallsFor14(t *testing.T) {
	a, err := New(adapter.WithBinding(bridge.Func(func(context.Context, []avro.Schema) ([]bridge.OutputFile, error) {
		return []bridge.OutputFile{{Path: "com/acme/Color.java", Contents: enumClass}}, nil
	})))
	require.NoError(t, err)
	schemas := []avro.Schema{avro.MustParse(`{"type":"enum","name":"Color","namespace":"com.acme","symbols":["RED","GREEN"]}`)}

	files, err := a.Compile(context.Background(), schemas, avrocompat.Avro14)
	require.NoError(t, err)
	require.Len(t, files, 1)
	code := files[0].Contents
	assert.Contains(t, code, `org.apache.avro.Schema.parse("{\"type\":\"enum\",\"name\":\"Color\"`)
	assert.NotContains(t, code, "Schema.Parser()")
	assert.Contains(t, code, "// @org.apache.avro.specific.AvroGenerated")
}

func TestRegistered(t *testing.T) {
	a, err := adapter.Open(Release, adapter.WithBinding(bridge.Func(func(context.Context, []avro.Schema) ([]bridge.OutputFile, error) {
		return nil, nil
	})))
	require.NoError(t, err)
	assert.True(t, a.Release().Equal(avrocompat.Avro17))
}
