package component

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	props, err := Normalize(containerSchema, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "column", props.String("direction"))
	assert.Equal(t, 8, props.Int("gap"))
	assert.False(t, props.Bool("wrap"))
	assert.Len(t, props.Values(), len(containerSchema.Properties))
}

func TestNormalizeCoercesNumbers(t *testing.T) {
	props, err := Normalize(containerSchema, map[string]any{
		"gap":     json.Number("12"),
		"padding": "24",
		"wrap":    "true",
		"width":   320.0,
		"height":  "50%",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, props.Int("gap"))
	assert.Equal(t, 24, props.Int("padding"))
	assert.True(t, props.Bool("wrap"))
	assert.Equal(t, "320px", props.String("width"))
	assert.Equal(t, "50%", props.String("height"))
}

func TestNormalizeClampsAndSubstitutes(t *testing.T) {
	props, err := Normalize(containerSchema, map[string]any{
		"gap":        -4,
		"padding":    999.6,
		"direction":  "diagonal",
		"background": "not-a-color",
		"width":      "wide",
		"align":      map[string]any{"x": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, props.Int("gap"))
	assert.Equal(t, 200, props.Int("padding"))
	assert.Equal(t, "column", props.String("direction"))
	assert.Equal(t, "#ffffff", props.String("background"))
	assert.Equal(t, "auto", props.String("width"))
	assert.Equal(t, "stretch", props.String("align"))
}

func TestNormalizeStringFromScalars(t *testing.T) {
	props, err := Normalize(headingSchema, map[string]any{"content": 2024.0})
	require.NoError(t, err)
	assert.Equal(t, "2024", props.String("content"))

	props, err = Normalize(headingSchema, map[string]any{"content": []any{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "Heading", props.String("content"))
}

func TestCheckLiteral(t *testing.T) {
	assert.NoError(t, CheckLiteral(qrcodeSchema, "error_level", "H"))
	assert.Error(t, CheckLiteral(qrcodeSchema, "error_level", "Z"))
	assert.NoError(t, CheckLiteral(qrcodeSchema, "size", 9000))
	assert.NoError(t, CheckLiteral(qrcodeSchema, "missing", "Z"))
}
