package makevm

import (
	"errors"

	"github.com/jbweber/zdir/internal/directory"
	zdirlibvirt "github.com/jbweber/zdir/internal/libvirt"
	"github.com/jbweber/zdir/internal/params"
	"github.com/jbweber/zdir/internal/smapi"
)

// Overall return codes.
const (
	OverallOK               = smapi.OverallOK
	OverallSMAPIFailed      = smapi.OverallSMAPIFailed
	OverallInvocationFailed = smapi.OverallInvocationFailed
	OverallInputError       = 4
	OverallInternalError    = 99
)

// Reason codes reported in RS for OverallInputError.
const (
	RSNotInteger        = 8
	RSMissingOperand    = 9
	RSBadUserID         = 10
	RSBadSubfunction    = 11
	RSUnknownOperand    = 12
	RSMissingValue      = 13
	RSMalformedOperand  = 14
	RSUnitFormat        = 205
	RSSizeOrdering      = 206
	RSVDiskSizeExceeded = 207
)

// SMAPI codes reported when the libvirt backend finds the guest already
// defined, matching Image_Create_DM's "image already defined".
const (
	rcImageExists = 400
	rsImageExists = 8
)

// Results is the outcome of one MakeVM request.
type Results struct {
	OverallRC int      `json:"overallRC" yaml:"overallRC"`
	RC        int      `json:"rc" yaml:"rc"`
	RS        int      `json:"rs" yaml:"rs"`
	Errno     int      `json:"errno" yaml:"errno"`
	Response  []string `json:"response,omitempty" yaml:"response,omitempty"`

	// Directory holds the built statements for dry runs.
	Directory []string `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// OK reports whether the request succeeded.
func (r Results) OK() bool { return r.OverallRC == OverallOK }

func inputError(rs int, err error) Results {
	return Results{OverallRC: OverallInputError, RC: 4, RS: rs, Response: []string{err.Error()}}
}

// ResultsFromError maps an error from parsing, building or submitting to
// its Results record. A nil error maps to success.
func ResultsFromError(err error) Results {
	if err == nil {
		return Results{}
	}

	var (
		parseErr   *params.ParseError
		reqErr     *RequestError
		unitErr    *directory.UnitFormatError
		orderErr   *directory.SizeOrderingError
		limitErr   *directory.SizeLimitError
		formatErr  *directory.FormatError
		submitErr  *smapi.SubmissionError
		invokeErr  *smapi.InvocationError
		stagingErr *smapi.StagingError
		connErr    *zdirlibvirt.ConnectionError
	)

	switch {
	case errors.As(err, &parseErr):
		switch parseErr.Reason {
		case params.NotInteger:
			return inputError(RSNotInteger, err)
		case params.UnknownOperand:
			return inputError(RSUnknownOperand, err)
		case params.MissingValue:
			return inputError(RSMissingValue, err)
		default:
			return inputError(RSMissingOperand, err)
		}
	case errors.As(err, &reqErr):
		if reqErr.Reason == UnknownSubfunction {
			return inputError(RSBadSubfunction, err)
		}
		return inputError(RSBadUserID, err)
	case errors.As(err, &unitErr):
		return inputError(RSUnitFormat, err)
	case errors.As(err, &orderErr):
		return inputError(RSSizeOrdering, err)
	case errors.As(err, &limitErr):
		return inputError(RSVDiskSizeExceeded, err)
	case errors.As(err, &formatErr):
		return inputError(RSMalformedOperand, err)
	case errors.As(err, &submitErr):
		r := submitErr.Result
		resp := r.Response
		if len(resp) == 0 {
			resp = []string{err.Error()}
		}
		return Results{OverallRC: r.OverallRC, RC: r.RC, RS: r.RS, Errno: r.Errno, Response: resp}
	case errors.As(err, &invokeErr):
		return Results{OverallRC: OverallInvocationFailed, Response: []string{err.Error()}}
	case errors.As(err, &connErr):
		return Results{OverallRC: OverallInvocationFailed, Response: []string{err.Error()}}
	case errors.Is(err, zdirlibvirt.ErrDomainExists):
		return Results{OverallRC: OverallSMAPIFailed, RC: rcImageExists, RS: rsImageExists, Response: []string{err.Error()}}
	case errors.As(err, &stagingErr):
		return Results{OverallRC: OverallInternalError, Response: []string{err.Error()}}
	default:
		return Results{OverallRC: OverallInternalError, Response: []string{err.Error()}}
	}
}
