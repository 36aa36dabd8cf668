package mbti

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"INTJ", "INTJ", false},
		{"enfp", "ENFP", false},
		{"  IsTj ", "ISTJ", false},
		{"ABCD", "", true},
		{"INT", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllTypes(t *testing.T) {
	types := AllTypes()
	require.Len(t, types, 16)

	seen := map[Type]bool{}
	for _, ty := range types {
		assert.False(t, seen[ty], "duplicate %s", ty)
		seen[ty] = true
	}

	// callers cannot reorder the canonical list
	types[0] = "XXXX"
	assert.Equal(t, Type("INTJ"), AllTypes()[0])
}

func TestDimensions(t *testing.T) {
	ty := Type("ENTJ")
	assert.True(t, ty.Extraverted())
	assert.True(t, ty.Intuitive())
	assert.True(t, ty.Thinking())
	assert.True(t, ty.Judging())

	ty = Type("ISFP")
	assert.False(t, ty.Extraverted())
	assert.False(t, ty.Intuitive())
	assert.False(t, ty.Thinking())
	assert.False(t, ty.Judging())
}

func TestAllThemes(t *testing.T) {
	themes := AllThemes()
	require.Len(t, themes, 16)

	for _, th := range themes {
		assert.NotEmpty(t, th.Title, th.Type)
		assert.NotEmpty(t, th.Description, th.Type)
		assert.NotEmpty(t, th.Sectors, th.Type)
		assert.NotEmpty(t, th.PreferredStability, th.Type)
		assert.NotEmpty(t, th.RiskAppetite, th.Type)
	}
	assert.Equal(t, Type("INTJ"), themes[0].Type)
}
