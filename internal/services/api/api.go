// Package api provides the HTTP API for the application
package api

import (
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"galaxy/internal/platform/config"
	"galaxy/internal/platform/logger"
	phttp "galaxy/internal/platform/net/http"
	"galaxy/internal/platform/net/middleware"
	"galaxy/internal/platform/store"

	"galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/modkit/swaggerkit"

	mapathonmod "galaxy/internal/services/api/mapathon/module"
	metamod "galaxy/internal/services/api/meta/module"
	orgmod "galaxy/internal/services/api/organization/module"
	qualitymod "galaxy/internal/services/api/quality/module"
	statusmod "galaxy/internal/services/api/status/module"
	taskingmod "galaxy/internal/services/api/tasking/module"
	trainingmod "galaxy/internal/services/api/training/module"
	usersmod "galaxy/internal/services/api/users/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := Deps(opt)

	// health and freshness must never be served from a cache
	fresh := modkit.WithMiddlewares(chimw.NoCache)

	mods := []modkit.Module{
		metamod.New(deps, fresh),
		mapathonmod.New(deps),
		qualitymod.New(deps),
		orgmod.New(deps),
		usersmod.New(deps),
		taskingmod.New(deps),
		trainingmod.New(deps),
		statusmod.New(deps, fresh),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		RequestTimeout: opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest:    opt.Config.MayDuration("SLOW_REQUEST", 2*time.Second),
		CORSOrigins:    opt.Config.MayList("CORS_ORIGINS"),
	})
	// report queries are expensive, so every client gets a request budget
	stack = append(stack, middleware.RateLimitByIP(
		opt.Config.MayInt("RATE_LIMIT", 60),
		opt.Config.MayDuration("RATE_WINDOW", time.Minute),
	))

	r.Handle("/metrics", promhttp.Handler())
	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: opt.Config.MayString("DOCS_TITLE_SUFFIX", ""),
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Str("prefix", httpkit.APIPrefix+m.Prefix()).Msg("module mounted")
		}
	})
}

// Deps builds the shared module dependencies from the options
func Deps(opt Options) modkit.Deps {
	deps := modkit.Deps{
		Cfg:          opt.Config,
		QueryTimeout: opt.Config.MayDuration("QUERY_TIMEOUT", 25*time.Second),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	// keep DB a true nil so Source reports no database configured
	if opt.Store != nil {
		deps.DB = opt.Store
	}
	if wm := opt.Config.MayString("WORK_MEM", ""); wm != "" {
		deps.Settings = append(deps.Settings, repokit.Setting{Name: "work_mem", Value: wm})
	}
	return deps
}
