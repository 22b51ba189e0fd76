package params

import "fmt"

// Reason classifies a ParseError.
type Reason int

const (
	// MissingOperand means a required positional operand was not supplied.
	MissingOperand Reason = iota + 1
	// UnknownOperand means a token matched no keyword in the grammar.
	UnknownOperand
	// MissingValue means a keyword was followed by fewer tokens than its arity.
	MissingValue
	// NotInteger means an integer operand did not parse as an integer.
	NotInteger
)

// ParseError reports why a token list does not satisfy a grammar.
type ParseError struct {
	Reason  Reason
	Operand string // positional name or keyword token
	Value   string // offending value, for NotInteger
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case MissingOperand:
		return fmt.Sprintf("missing required operand: %s", e.Operand)
	case UnknownOperand:
		return fmt.Sprintf("unrecognized operand: %s", e.Operand)
	case MissingValue:
		return fmt.Sprintf("missing value for operand: %s", e.Operand)
	case NotInteger:
		return fmt.Sprintf("value %q for operand %s is not an integer", e.Value, e.Operand)
	default:
		return fmt.Sprintf("invalid operand: %s", e.Operand)
	}
}
