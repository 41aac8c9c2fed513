// Package errors is the error type every layer of a report returns. A code
// decides the HTTP status and the numeric "code" clients see; import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is sent to clients as a number. Never reorder, only append.
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	// ErrorCodeUnavailable: a source is down, unconfigured or its breaker is open
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	// ErrorCodeInvalidArgument: postgres could not coerce a bound value
	ErrorCodeInvalidArgument
	// ErrorCodeValidation: filters rejected before any SQL is built
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeDB
	// ErrorCodeTimeout: statement_timeout or the report deadline
	ErrorCodeTimeout
	ErrorCodeQueryConstruction
	// ErrorCodeMapping: a row that cannot become a report record, e.g. an unknown enum value
	ErrorCodeMapping
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:           {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:             {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:       {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:   {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument:   {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:        {"validation", http.StatusBadRequest},
	ErrorCodeJSON:              {"json", http.StatusBadRequest},
	ErrorCodeDB:                {"db", http.StatusInternalServerError},
	ErrorCodeTimeout:           {"timeout", http.StatusGatewayTimeout},
	ErrorCodeQueryConstruction: {"query_construction", http.StatusInternalServerError},
	ErrorCodeMapping:           {"mapping", http.StatusInternalServerError},
}

func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode is 500 for anything it does not know
func HTTPStatusCode(c ErrorCode) int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// Error carries a code, a client facing message and optionally the cause,
// the offending filter field, the operation and a postgres SQLSTATE.
type Error struct {
	code   ErrorCode
	msg    string
	orig   error
	field  string
	op     string
	dbCode string
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }
func (e *Error) DBCode() string  { return e.dbCode }

func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Message: e.msg, Field: e.field, DBCode: e.dbCode}
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// Wire is the client view of an error; the cause never leaves the process
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	DBCode  string    `json:"db_code,omitempty"`
}

// WireFrom renders any error; foreign errors keep their text under ErrorCodeUnknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err naming the filter field at fault; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := e.clone()
	c.field = field
	return c
}

// WithOp returns a copy of err tagged with op, e.g. "mapathon_detail.user_stats"
func WithOp(err error, op string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := e.clone()
	c.op = op
	return c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

func Validationf(format string, a ...any) error  { return Newf(ErrorCodeValidation, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
func QueryBuildf(format string, a ...any) error  { return Newf(ErrorCodeQueryConstruction, format, a...) }
func Mappingf(format string, a ...any) error     { return Newf(ErrorCodeMapping, format, a...) }
