package makevm

import (
	"fmt"
	"strings"

	"github.com/jbweber/zdir/internal/grammar"
	"github.com/jbweber/zdir/internal/naming"
	"github.com/jbweber/zdir/internal/params"
)

// FunctionName is the first token of every MakeVM request.
const FunctionName = "MAKEVM"

// operandOffset is the index of the first sub-operation operand:
// MakeVM <userid> <subfunction> <operands...>.
const operandOffset = 3

// Request is a parsed MakeVM invocation.
type Request struct {
	Function    string
	UserID      string
	Subfunction string
	Params      params.Params
}

// RequestReason classifies a RequestError.
type RequestReason int

const (
	// MissingUserID means the request had no userid or subfunction.
	MissingUserID RequestReason = iota + 1
	// InvalidUserID means the userid does not follow CP naming rules.
	InvalidUserID
	// UnknownSubfunction means the subfunction is not DIRECTORY, HELP or VERSION.
	UnknownSubfunction
)

// RequestError reports a malformed request line, before operand parsing.
type RequestError struct {
	Reason RequestReason
	Value  string
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Reason {
	case MissingUserID:
		return "userid is missing"
	case InvalidUserID:
		return fmt.Sprintf("invalid userid: %v", e.Err)
	case UnknownSubfunction:
		return fmt.Sprintf("subfunction %q is not one of: %s", e.Value, strings.Join(grammar.Subfunctions(), ", "))
	default:
		return "invalid request"
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseRequest parses a complete MakeVM token list. tokens[0] is the
// function name and is recorded as given.
func ParseRequest(tokens []string) (*Request, error) {
	if len(tokens) < 2 {
		return nil, &RequestError{Reason: MissingUserID}
	}

	req := &Request{Function: strings.ToUpper(tokens[0])}
	if len(tokens) == 2 {
		req.Subfunction = strings.ToUpper(tokens[1])
	} else {
		req.UserID = strings.ToUpper(tokens[1])
		req.Subfunction = strings.ToUpper(tokens[2])
	}

	g, ok := grammar.ForSubfunction(req.Subfunction)
	if !ok {
		return nil, &RequestError{Reason: UnknownSubfunction, Value: req.Subfunction}
	}

	if req.Subfunction == grammar.SubDirectory {
		id, err := naming.NormalizeUserID(req.UserID)
		if err != nil {
			return nil, &RequestError{Reason: InvalidUserID, Value: req.UserID, Err: err}
		}
		req.UserID = id
	}

	p, err := params.Parse(tokens, operandOffset, g)
	if err != nil {
		return nil, err
	}
	req.Params = p

	postProcess(req)
	return req, nil
}

// postProcess applies the MakeVM rules that follow generic parsing: the
// --logonby value becomes a list and a missing maximum memory size defaults
// to the primary size.
func postProcess(req *Request) {
	if v, ok := req.Params.Str(grammar.KeyLogonBy); ok {
		var users []string
		for _, u := range strings.Split(v, ":") {
			users = append(users, strings.TrimSpace(u))
		}
		req.Params[grammar.KeyLogonBy] = params.List(users...)
	}

	if req.Subfunction == grammar.SubDirectory && !req.Params.Has(grammar.KeyMaxMemSize) {
		if pri, ok := req.Params[grammar.KeyPriMemSize]; ok {
			req.Params[grammar.KeyMaxMemSize] = pri
		}
	}
}
