package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		input    string
		expected Field
		wantErr  bool
	}{
		{input: "title", expected: FieldTitle},
		{input: "Title", expected: FieldTitle},
		{input: " AUTHOR ", expected: FieldAuthor},
		{input: "genre", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, err := ParseField(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, field)
		})
	}
}

func TestParseYear(t *testing.T) {
	year, err := ParseYear(" 1937 ")
	require.NoError(t, err)
	assert.Equal(t, 1937, year)

	year, err = ParseYear("-44")
	require.NoError(t, err)
	assert.Equal(t, -44, year)

	for _, bad := range []string{"", "19x7", "1937.5"} {
		_, err := ParseYear(bad)
		assert.ErrorIs(t, err, ErrValidation, "input %q", bad)
	}
}

func TestParseReadStatus(t *testing.T) {
	assert.True(t, ParseReadStatus("yes"))
	assert.True(t, ParseReadStatus(" Yes\n"))
	assert.False(t, ParseReadStatus("no"))
	assert.False(t, ParseReadStatus("y"))
	assert.False(t, ParseReadStatus(""))
}

func TestBookString(t *testing.T) {
	b := Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SF", ReadStatus: true}
	assert.Equal(t, "Dune by Frank Herbert (1965) - SF - Read", b.String())

	b.ReadStatus = false
	assert.Equal(t, "Unread", b.Status())
}
