package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/km-arc/nakago/framework/config"
	"github.com/km-arc/nakago/framework/inject"
	"github.com/km-arc/nakago/framework/logging"
)

// Config is the HTTP section of an application config.
type Config struct {
	Address         string        `yaml:"address"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the host:port to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// Configurable is implemented by config types that carry an HTTP section.
type Configurable interface {
	HTTPConfig() *Config
}

// ConfigLoader fills the HTTP section from HTTP_ADDRESS, HTTP_PORT and
// HTTP_SHUTDOWN_TIMEOUT. The port keeps its file value unless the
// variable is set, so HTTP_PORT=0 asks for an ephemeral port.
var ConfigLoader config.Loader = config.LoaderFunc(func(cfg any) error {
	c, ok := cfg.(Configurable)
	if !ok {
		return errors.Errorf("http: %T has no HTTP section", cfg)
	}
	hc := c.HTTPConfig()
	hc.Address = config.Get("HTTP_ADDRESS", or(hc.Address, "0.0.0.0"))

	port := hc.Port
	if port == 0 {
		port = 8000
	}
	hc.Port = config.GetInt("HTTP_PORT", port)

	timeout := hc.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	hc.ShutdownTimeout = config.GetDuration("HTTP_SHUTDOWN_TIMEOUT", timeout)
	return nil
})

var (
	// RouterTag holds the application Router.
	RouterTag = inject.NewTag[*Router]("HTTPRouter")

	// ServerTag holds the running Server between Serve and Stop.
	ServerTag = inject.NewTag[*Server]("HTTPServer")
)

// Server is a listening http.Server.
type Server struct {
	srv  *http.Server
	ln   net.Listener
	done chan error
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Shutdown gracefully stops the server and waits for Serve to return.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	return <-s.done
}

// Listen binds addr and serves handler in the background.
func Listen(addr string, handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", addr)
	}

	s := &Server{
		srv:  &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		ln:   ln,
		done: make(chan error, 1),
	}
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return s, nil
}

// ── Hooks ────────────────────────────────────────────────────────────────────

// Init returns a Hook that provides the Router under RouterTag. The Router
// is built on first use with the injected logger.
func Init() inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		return inject.ProvideTag(i, RouterTag, inject.ProviderFunc[*Router](func(ctx context.Context, i *inject.Container) (*Router, error) {
			return NewRouter(logging.Logger(ctx, i)), nil
		}))
	})
}

// Routes returns a Hook that registers routes on the Router under
// RouterTag. Register it in the Init phase after Init.
//
//	application.On(lifecycle.Init, http.Routes(func(r *http.Router) {
//	    r.Get("/users", listUsers)
//	}))
func Routes(fn func(r *Router)) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		r, err := inject.GetTag(ctx, i, RouterTag)
		if err != nil {
			return err
		}
		fn(r)
		return nil
	})
}

// Serve returns a Startup Hook that listens on the configured address with
// the Router wrapped by WithContainer, and injects the Server under
// ServerTag.
func Serve[C any, PC interface {
	*C
	Configurable
}](tag *inject.Tag[*C]) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		cfg, err := inject.GetTag(ctx, i, tag)
		if err != nil {
			return err
		}
		r, err := inject.GetTag(ctx, i, RouterTag)
		if err != nil {
			return err
		}

		s, err := Listen(PC(cfg).HTTPConfig().Addr(), WithContainer(i)(r))
		if err != nil {
			return err
		}
		if err := inject.InjectTag(i, ServerTag, s); err != nil {
			_ = s.Shutdown(ctx)
			return err
		}

		logging.Logger(ctx, i).WithField("addr", s.Addr()).Info("http server started")
		return nil
	})
}

// Stop returns a Shutdown Hook that takes the Server out of the Container
// and shuts it down within the configured timeout. It does nothing when
// no Server is running.
func Stop[C any, PC interface {
	*C
	Configurable
}](tag *inject.Tag[*C]) inject.Hook {
	return inject.HookFunc(func(ctx context.Context, i *inject.Container) error {
		if !i.Contains(ServerTag.Key()) {
			return nil
		}
		s, err := inject.ConsumeTag(ctx, i, ServerTag)
		if err != nil {
			return err
		}

		timeout := 10 * time.Second
		if cfg, ok, _ := inject.GetTagOpt(ctx, i, tag); ok && PC(cfg).HTTPConfig().ShutdownTimeout > 0 {
			timeout = PC(cfg).HTTPConfig().ShutdownTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			return err
		}
		logging.Logger(ctx, i).Info("http server stopped")
		return nil
	})
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
