package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedProperties(t *testing.T) {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"zeta":  {Type: TypeString},
			"alpha": {Type: TypeString},
			"first": {Type: TypeString},
		},
		PropertyOrder: []string{"first", "missing"},
	}

	// явный порядок, затем остальные по алфавиту; отсутствующие
	// в Properties имена пропускаются
	assert.Equal(t, []string{"first", "alpha", "zeta"}, s.OrderedProperties())
}

func TestIsRequired(t *testing.T) {
	s := &Schema{Required: []string{"url"}}
	assert.True(t, s.IsRequired("url"))
	assert.False(t, s.IsRequired("method"))
}

func TestVisible(t *testing.T) {
	hint := Hint{ShowWhen: &ShowWhen{Field: "method", Value: "POST"}}

	assert.True(t, Visible(Hint{}, nil))
	assert.True(t, Visible(hint, map[string]any{"method": "POST"}))
	assert.False(t, Visible(hint, map[string]any{"method": "GET"}))
	assert.False(t, Visible(hint, map[string]any{}))
}

func TestCreateEmptyValue(t *testing.T) {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"name":    {Type: TypeString},
			"count":   {Type: TypeInteger, Default: float64(5)},
			"enabled": {Type: TypeBoolean},
			"items":   {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
	}

	got := CreateEmptyValue(s).(map[string]any)
	assert.Equal(t, "", got["name"])
	assert.Equal(t, float64(5), got["count"])
	assert.Equal(t, false, got["enabled"])
	assert.Equal(t, []any{}, got["items"])

	assert.Nil(t, CreateEmptyValue(nil))
}
