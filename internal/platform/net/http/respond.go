// Package http is the transport layer every report is served through: the
// router seam, the listener and the response envelope.
package http

import (
	"encoding/json"
	"mime"
	stdhttp "net/http"

	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/logger"
	lumnet "galaxy/internal/platform/net"
)

// Envelope wraps every JSON answer. Code, Error and DBCode are only set on
// failures, Data only on success.
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	DBCode     string         `json:"db_code,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what a handler hands back. Body is report data, an error
// or a Raw document; Status defaults to 200 and is ignored for errors.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK wraps data in a 200
func OK(data any) Response { return Response{Body: data} }

// Error answers with the status and code err carries
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

// WriteError writes the error envelope directly; for middleware
func WriteError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) { Error(err).write(w, r) }

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		w.Header()[k] = append(w.Header()[k], vv...)
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	env := Envelope{RequestID: lumnet.RequestID(r.Context())}
	switch body := resp.Body.(type) {
	case Raw:
		body.write(w, status)
		return
	case error:
		status = perr.HTTPStatus(body)
		wire := perr.WireFrom(body)
		env.Code, env.Error, env.DBCode = wire.Code, wire.Message, wire.DBCode
	default:
		env.Data = body
	}
	env.StatusCode, env.Status = status, stdhttp.StatusText(status)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		// headers are gone; all that is left is to say so
		logger.C(r.Context()).Error().Err(err).Int("status", status).Msg("encode response")
	}
}

// Raw is a pre rendered body sent without the envelope, e.g. a CSV export
type Raw struct {
	ContentType string
	// Filename turns the body into an attachment
	Filename string
	Body     []byte
}

func (raw Raw) write(w stdhttp.ResponseWriter, status int) {
	w.Header().Set("Content-Type", raw.ContentType)
	if raw.Filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": raw.Filename}))
	}
	w.WriteHeader(status)
	_, _ = w.Write(raw.Body)
}

// CSV is a 200 attachment
func CSV(filename string, body []byte) Response {
	return OK(Raw{ContentType: "text/csv; charset=utf-8", Filename: filename, Body: body})
}

// GeoJSON is a 200 FeatureCollection document
func GeoJSON(body []byte) Response {
	return OK(Raw{ContentType: "application/geo+json", Body: body})
}
