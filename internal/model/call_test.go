package model

import (
	"testing"

	"github.com/Veraticus/calllog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCall(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		want    int
		wantErr bool
	}{
		{name: "plain number", number: "42", want: 42},
		{name: "surrounding whitespace", number: " 7 ", want: 7},
		{name: "negative number", number: "-3", want: -3},
		{name: "letters", number: "abc", wantErr: true},
		{name: "empty", number: "", wantErr: true},
		{name: "decimal", number: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := ParseCall(tt.number, "+7 900 000-00-00", "no internet", ResolvedNo)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidField)
				var fieldErr *common.FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, FieldNumber, fieldErr.Field)
				assert.Equal(t, tt.number, fieldErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, call.Number)
			assert.Equal(t, "+7 900 000-00-00", call.Phone)
			assert.Equal(t, "no internet", call.Reason)
			assert.Equal(t, ResolvedNo, call.Resolved)
		})
	}
}

func TestCall_Field(t *testing.T) {
	call := NewCall(5, "555-0100", "billing", ResolvedYes)

	tests := []struct {
		name string
		want string
	}{
		{name: FieldNumber, want: "5"},
		{name: FieldPhone, want: "555-0100"},
		{name: FieldReason, want: "billing"},
		{name: FieldResolved, want: ResolvedYes},
	}
	for _, tt := range tests {
		got, err := call.Field(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := call.Field("email")
	assert.ErrorIs(t, err, common.ErrUnknownField)
}

func TestCall_SetField(t *testing.T) {
	var call Call

	require.NoError(t, call.SetField(FieldNumber, "12"))
	require.NoError(t, call.SetField(FieldPhone, "555-0199"))
	require.NoError(t, call.SetField(FieldReason, "router"))
	require.NoError(t, call.SetField(FieldResolved, "Нет"))
	assert.Equal(t, NewCall(12, "555-0199", "router", "Нет"), call)

	err := call.SetField(FieldNumber, "twelve")
	assert.ErrorIs(t, err, common.ErrInvalidField)
	assert.Equal(t, 12, call.Number, "failed assignment must not change the number")

	err = call.SetField("email", "a@b.c")
	assert.ErrorIs(t, err, common.ErrUnknownField)
}

func TestCall_ToMapping(t *testing.T) {
	call := NewCall(3, "555-0123", "slow; unstable", ResolvedNo)

	m := call.ToMapping()
	assert.Len(t, m, len(Columns))
	assert.Equal(t, "3", m[ColumnNumber])
	assert.Equal(t, "555-0123", m[ColumnPhone])
	assert.Equal(t, "slow; unstable", m[ColumnReason])
	assert.Equal(t, ResolvedNo, m[ColumnResolved])

	assert.Equal(t, []string{"3", "555-0123", "slow; unstable", ResolvedNo}, call.Row())

	parsed, err := ParseCall(m[ColumnNumber], m[ColumnPhone], m[ColumnReason], m[ColumnResolved])
	require.NoError(t, err)
	assert.Equal(t, call, parsed)
}

func TestCall_String(t *testing.T) {
	call := NewCall(1, "555-0100", "billing", ResolvedYes)
	assert.Equal(t, "Call(1, 555-0100, billing, да)", call.String())
}
