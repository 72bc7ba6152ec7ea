package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/nakago/framework/inject"
)

// ErrNoContainer is returned by Dependency when the request did not pass
// through WithContainer.
var ErrNoContainer = errors.New("no container in request context")

type containerKey struct{}

// WithContainer stores i in every request context so handlers can resolve
// their dependencies lazily with Dependency and DependencyTag.
func WithContainer(i *inject.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), containerKey{}, i)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Container returns the Container stored by WithContainer.
func Container(r *http.Request) (*inject.Container, bool) {
	i, ok := r.Context().Value(containerKey{}).(*inject.Container)
	return i, ok
}

// Dependency resolves the value of type T for the request.
//
//	svc, err := http.Dependency[*users.Service](r)
func Dependency[T any](r *http.Request) (T, error) {
	i, ok := Container(r)
	if !ok {
		var zero T
		return zero, ErrNoContainer
	}
	return inject.Get[T](r.Context(), i)
}

// DependencyTag resolves the value under tag for the request.
func DependencyTag[T any](r *http.Request, tag *inject.Tag[T]) (T, error) {
	i, ok := Container(r)
	if !ok {
		var zero T
		return zero, ErrNoContainer
	}
	return inject.GetTag(r.Context(), i, tag)
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"remote":     r.RemoteAddr,
			}).Info("request")
		})
	}
}
