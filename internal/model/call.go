package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/calllog/internal/common"
)

// Field names accepted by Call.Field and Call.SetField.
const (
	FieldNumber   = "number"
	FieldPhone    = "phone"
	FieldReason   = "reason"
	FieldResolved = "resolved"
)

// Column labels used in the call log file header. These are fixed strings and
// must never be translated.
const (
	ColumnNumber   = "№"
	ColumnPhone    = "телефон"
	ColumnReason   = "причина обращения"
	ColumnResolved = "решена проблема"
)

// Columns lists the file columns in their declared order.
var Columns = []string{ColumnNumber, ColumnPhone, ColumnReason, ColumnResolved}

// Conventional values of the resolved flag.
const (
	ResolvedYes = "да"
	ResolvedNo  = "нет"
)

// Call represents a single support call entry.
type Call struct {
	Phone    string
	Reason   string
	Resolved string // Free text, conventionally ResolvedYes or ResolvedNo
	Number   int
}

// NewCall creates a call with an already numeric identifier.
func NewCall(number int, phone, reason, resolved string) Call {
	return Call{
		Number:   number,
		Phone:    phone,
		Reason:   reason,
		Resolved: resolved,
	}
}

// ParseCall creates a call from textual values, coercing number to an integer.
func ParseCall(number, phone, reason, resolved string) (Call, error) {
	n, err := parseNumber(number)
	if err != nil {
		return Call{}, err
	}
	return NewCall(n, phone, reason, resolved), nil
}

// Field returns the textual value of the named field.
func (c Call) Field(name string) (string, error) {
	switch name {
	case FieldNumber:
		return strconv.Itoa(c.Number), nil
	case FieldPhone:
		return c.Phone, nil
	case FieldReason:
		return c.Reason, nil
	case FieldResolved:
		return c.Resolved, nil
	default:
		return "", &common.FieldError{Field: name, Err: common.ErrUnknownField}
	}
}

// SetField assigns the named field. The number field is coerced to an integer.
func (c *Call) SetField(name, value string) error {
	switch name {
	case FieldNumber:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		c.Number = n
	case FieldPhone:
		c.Phone = value
	case FieldReason:
		c.Reason = value
	case FieldResolved:
		c.Resolved = value
	default:
		return &common.FieldError{Field: name, Err: common.ErrUnknownField}
	}
	return nil
}

// ToMapping returns the call keyed by file column label. Iterate Columns for
// the declared order.
func (c Call) ToMapping() map[string]string {
	return map[string]string{
		ColumnNumber:   strconv.Itoa(c.Number),
		ColumnPhone:    c.Phone,
		ColumnReason:   c.Reason,
		ColumnResolved: c.Resolved,
	}
}

// Row returns the call's values in column order.
func (c Call) Row() []string {
	m := c.ToMapping()
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = m[col]
	}
	return row
}

func (c Call) String() string {
	return fmt.Sprintf("Call(%d, %s, %s, %s)", c.Number, c.Phone, c.Reason, c.Resolved)
}

func parseNumber(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &common.FieldError{Field: FieldNumber, Value: value, Err: common.ErrInvalidField}
	}
	return n, nil
}
