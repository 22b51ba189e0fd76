// Package params implements a generic keyword/positional operand parser.
//
// A Grammar declares, per sub-operation, the ordered positional operands and
// the recognized keyword tokens. Parse walks the token list once, left to
// right, and produces a Params map keyed by parameter identity. Grammars are
// plain data and safe to share between goroutines.
package params

import (
	"sort"
	"strconv"
)

// Key is the stable identity of a parameter in a Params map.
type Key string

// ValueType is the declared type of an operand value.
type ValueType int

const (
	// TypeNone is used by arity-0 keywords (flags).
	TypeNone ValueType = iota
	// TypeInt values must parse as base-10 integers.
	TypeInt
	// TypeString values are taken verbatim.
	TypeString
)

// Positional describes one positional operand.
type Positional struct {
	Name     string // display name used in error messages and help
	Key      Key
	Required bool
	Type     ValueType
}

// Keyword describes one recognized keyword token.
type Keyword struct {
	Key   Key
	Arity int // number of following tokens consumed; 0 means flag
	Type  ValueType
}

// Grammar is the operand grammar of one sub-operation.
type Grammar struct {
	Positional []Positional
	Keywords   map[string]Keyword
}

// KeywordTokens returns the grammar's keyword tokens in sorted order.
func (g Grammar) KeywordTokens() []string {
	tokens := make([]string, 0, len(g.Keywords))
	for tok := range g.Keywords {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Params maps parameter keys to parsed values. A key is present only when
// the operand was supplied or defaulted.
type Params map[Key]Value

// Has reports whether key was supplied.
func (p Params) Has(key Key) bool {
	_, ok := p[key]
	return ok
}

// Str returns the string value stored under key.
func (p Params) Str(key Key) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Int returns the integer value stored under key.
func (p Params) Int(key Key) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// List returns the list value stored under key.
func (p Params) List(key Key) ([]string, bool) {
	v, ok := p[key]
	if !ok {
		return nil, false
	}
	return v.AsList()
}

// Keys returns the keys present in p in sorted order.
func (p Params) Keys() []Key {
	keys := make([]Key, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Parse parses tokens[offset:] against g.
//
// Positional operands are consumed first, in declared order. The remaining
// tokens must each be a keyword from g followed by exactly Arity values.
// The first problem found is returned as a *ParseError; no partial map is
// returned on failure.
func Parse(tokens []string, offset int, g Grammar) (Params, error) {
	if offset < 0 {
		offset = 0
	}
	pos := offset
	out := make(Params)

	for _, op := range g.Positional {
		if pos >= len(tokens) {
			if op.Required {
				return nil, &ParseError{Reason: MissingOperand, Operand: op.Name}
			}
			continue
		}
		v, err := convert(op.Name, tokens[pos], op.Type)
		if err != nil {
			return nil, err
		}
		out[op.Key] = v
		pos++
	}

	for pos < len(tokens) {
		tok := tokens[pos]
		kw, ok := g.Keywords[tok]
		if !ok {
			return nil, &ParseError{Reason: UnknownOperand, Operand: tok}
		}
		pos++

		switch {
		case kw.Arity == 0:
			out[kw.Key] = Flag()
		case pos+kw.Arity > len(tokens):
			return nil, &ParseError{Reason: MissingValue, Operand: tok}
		case kw.Arity == 1:
			v, err := convert(tok, tokens[pos], kw.Type)
			if err != nil {
				return nil, err
			}
			out[kw.Key] = v
		default:
			items := make([]string, 0, kw.Arity)
			for _, raw := range tokens[pos : pos+kw.Arity] {
				v, err := convert(tok, raw, kw.Type)
				if err != nil {
					return nil, err
				}
				items = append(items, v.String())
			}
			out[kw.Key] = List(items...)
		}
		pos += kw.Arity
	}

	return out, nil
}

func convert(operand, raw string, typ ValueType) (Value, error) {
	if typ != TypeInt {
		return String(raw), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Value{}, &ParseError{Reason: NotInteger, Operand: operand, Value: raw}
	}
	return Int(n), nil
}
