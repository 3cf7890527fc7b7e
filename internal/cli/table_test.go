package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/Veraticus/calllog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCalls(t *testing.T) {
	calls := []model.Call{
		model.NewCall(1, "555-0100", "billing", "да"),
		model.NewCall(2, "555-0101", "router\nis down", "нет"),
	}

	var buf bytes.Buffer
	rows, err := WriteCalls(&buf, "Calls", slices.Values(calls), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	out := buf.String()
	assert.Contains(t, out, "Calls")
	assert.Contains(t, out, model.ColumnReason)
	assert.Contains(t, out, "555-0100")
	assert.Contains(t, out, "router is down")
	assert.Equal(t, 4, strings.Count(out, "\n"), "title, header and one line per call")
}

func TestWriteCalls_HighlightsUnresolved(t *testing.T) {
	calls := []model.Call{model.NewCall(1, "555-0100", "billing", "нет")}

	var buf bytes.Buffer
	var checked []int
	_, err := WriteCalls(&buf, "Unresolved", slices.Values(calls), func(c model.Call) bool {
		checked = append(checked, c.Number)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, checked)
	assert.Contains(t, buf.String(), "нет")
}

func TestWriteCalls_Empty(t *testing.T) {
	var buf bytes.Buffer
	rows, err := WriteCalls(&buf, "Calls", slices.Values([]model.Call(nil)), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.Contains(t, buf.String(), "(no calls)")
}
