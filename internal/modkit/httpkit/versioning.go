package httpkit

import "net/http"

// APIPrefix is where every report module lives
const APIPrefix = "/api/v1"

// MountAPIV1 scopes mw to /api/v1 and lets mount register modules there.
// Routes mounted on the outer router (metrics, docs) skip the stack.
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIPrefix, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
