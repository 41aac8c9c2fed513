package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"galaxy/internal/platform/config"
	"galaxy/internal/platform/logger"
)

// ServerConfig holds the listener knobs
type ServerConfig struct {
	Addr              string
	ShutdownGrace     time.Duration
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	// WriteTimeout must outlive the request timeout or a 504 envelope never reaches the client
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ServerConfigFrom reads API_PORT, SHUTDOWN_GRACE and the *_TIMEOUT keys
func ServerConfigFrom(c config.Conf) ServerConfig {
	return ServerConfig{
		Addr:              c.MayString("API_PORT", ":4000"),
		ShutdownGrace:     c.MayDuration("SHUTDOWN_GRACE", 15*time.Second),
		ReadHeaderTimeout: c.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       c.MayDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      c.MayDuration("WRITE_TIMEOUT", 45*time.Second),
		IdleTimeout:       c.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
	}
}

// Server owns the root chi mux and the listener
type Server struct {
	cfg ServerConfig
	mux *chi.Mux
	srv *stdhttp.Server
}

func NewServer(cfg ServerConfig) *Server {
	mux := chi.NewRouter()
	return &Server{
		cfg: cfg,
		mux: mux,
		srv: &stdhttp.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Router is the root router everything mounts on
func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.cfg.Addr }

// Run listens, serves until ctx is done and then gives in flight reports
// ShutdownGrace to finish. A listen failure is returned straight away.
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.cfg.ShutdownGrace).Msg("http draining")
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	})
	return g.Wait()
}
