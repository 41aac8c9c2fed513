// Package httpkit is what report modules mount against: the router seam,
// body binding and the response helpers for csv and geojson downloads.
package httpkit

import (
	"net/http"

	phttp "galaxy/internal/platform/net/http"
	"galaxy/internal/platform/net/http/bind"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Response lets a handler pick a non default status or a raw body
	Response = phttp.Response
)

// CSV returns an attachment download
func CSV(filename string, body []byte) Response { return phttp.CSV(filename, body) }

// GeoJSON returns a FeatureCollection document without the envelope
func GeoJSON(body []byte) Response { return phttp.GeoJSON(body) }

// PostJSON mounts h under POST with the body bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(h(req, in))
	}))
}

// Get mounts a body-less handler; query and path params are read by h
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) Response { return respond(h(req)) }))
}

// respond wraps out in the envelope unless h already built a Response
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}
