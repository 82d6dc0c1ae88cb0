package avrocompat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/avrocompat"
)

func TestUnsupportedError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := avrocompat.NewUnsupportedError(avrocompat.Avro16, "compile", "avro-tools jar not found")
		assert.Equal(t, "avrocompat: compile unsupported by avro 1.6: avro-tools jar not found", err.Error())

		err = avrocompat.NewUnsupportedError(avrocompat.Avro14, "compile", "")
		assert.Equal(t, "avrocompat: compile unsupported by avro 1.4", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := avrocompat.NewUnsupportedError(avrocompat.Avro17, "compile", "")
		assert.True(t, errors.Is(err, avrocompat.ErrUnsupported))
		assert.False(t, errors.Is(err, avrocompat.ErrInternalState))
	})

	t.Run("IsUnsupported", func(t *testing.T) {
		err := avrocompat.NewUnsupportedError(avrocompat.Avro18, "compile", "")
		assert.True(t, avrocompat.IsUnsupported(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, avrocompat.IsUnsupported(wrapped))

		// Sentinel error
		assert.True(t, avrocompat.IsUnsupported(avrocompat.ErrUnsupported))

		// Non-matching error
		assert.False(t, avrocompat.IsUnsupported(errors.New("other error")))
		assert.False(t, avrocompat.IsUnsupported(nil))
	})
}

func TestInternalError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := avrocompat.NewInternalError("compile", errors.New("boom"))
		assert.Equal(t, "avrocompat: compile: internal state error: boom", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("no such method")
		err := avrocompat.NewInternalError("bind", underlying)
		assert.Equal(t, underlying, errors.Unwrap(err))
		assert.True(t, errors.Is(err, underlying))
		assert.True(t, errors.Is(err, avrocompat.ErrInternalState))
	})

	t.Run("IsInternal", func(t *testing.T) {
		err := avrocompat.NewInternalError("compile", errors.New("boom"))
		assert.True(t, avrocompat.IsInternal(err))
		assert.True(t, avrocompat.IsInternal(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, avrocompat.IsInternal(errors.New("other error")))
		assert.False(t, avrocompat.IsInternal(nil))
		assert.False(t, avrocompat.IsInternal(avrocompat.NewUnsupportedError(avrocompat.Avro14, "compile", "")))
	})
}

func TestValidationError(t *testing.T) {
	underlying := errors.New("unknown symbol \"PURPLE\"")
	err := avrocompat.NewValidationError("com.acme.Color", underlying)

	assert.Equal(t, `avrocompat: invalid value for "com.acme.Color": unknown symbol "PURPLE"`, err.Error())
	assert.True(t, errors.Is(err, avrocompat.ErrInvalidValue))
	assert.True(t, errors.Is(err, underlying))
}

func TestSchemaError(t *testing.T) {
	underlying := errors.New("unexpected end of JSON input")

	err := avrocompat.NewSchemaError("user.avsc", underlying)
	assert.Equal(t, "avrocompat: parsing schema user.avsc: unexpected end of JSON input", err.Error())
	assert.Equal(t, underlying, errors.Unwrap(err))

	err = avrocompat.NewSchemaError("", underlying)
	assert.Equal(t, "avrocompat: parsing schema: unexpected end of JSON input", err.Error())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrUnsupported", func(t *testing.T) {
		assert.Error(t, avrocompat.ErrUnsupported)
		assert.Contains(t, avrocompat.ErrUnsupported.Error(), "unsupported")
	})

	t.Run("ErrInternalState", func(t *testing.T) {
		assert.Error(t, avrocompat.ErrInternalState)
		assert.Contains(t, avrocompat.ErrInternalState.Error(), "internal state")
	})

	t.Run("ErrInvalidValue", func(t *testing.T) {
		assert.Error(t, avrocompat.ErrInvalidValue)
		assert.Contains(t, avrocompat.ErrInvalidValue.Error(), "invalid value")
	})
}

// BenchmarkErrors benchmarks error creation and checking.
func BenchmarkErrors(b *testing.B) {
	b.Run("NewUnsupportedError", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = avrocompat.NewUnsupportedError(avrocompat.Avro14, "compile", "")
		}
	})

	b.Run("IsUnsupported", func(b *testing.B) {
		err := avrocompat.NewUnsupportedError(avrocompat.Avro14, "compile", "")
		for i := 0; i < b.N; i++ {
			_ = avrocompat.IsUnsupported(err)
		}
	})
}
