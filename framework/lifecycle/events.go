// Package lifecycle runs inject.Hooks in named application phases.
//
//	events := lifecycle.NewEvents()
//	events.On(lifecycle.Init, database.Load(app.ConfigTag), users.Load())
//	events.On(lifecycle.Startup, gohttp.Serve(app.ConfigTag))
//
//	if err := events.Trigger(ctx, lifecycle.Init, i); err != nil {
//	    log.Fatal(err)
//	}
package lifecycle

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/nakago/framework/inject"
)

// Event names a lifecycle phase.
type Event int

const (
	// Load registers config loaders and other pre-config setup.
	Load Event = iota + 1
	// Init registers the application's Providers once the config is loaded.
	Init
	// Startup starts long-running work such as servers.
	Startup
	// Shutdown stops it again.
	Shutdown
)

func (e Event) String() string {
	switch e {
	case Load:
		return "Load"
	case Init:
		return "Init"
	case Startup:
		return "Startup"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// Events holds the Hooks registered for each Event.
type Events struct {
	mu    sync.Mutex
	hooks map[Event][]inject.Hook
	log   logrus.FieldLogger
}

// NewEvents creates an empty set of Events.
func NewEvents() *Events {
	return &Events{
		hooks: make(map[Event][]inject.Hook),
		log:   logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger used to trace phases.
func (e *Events) SetLogger(log logrus.FieldLogger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = log
}

// On appends hooks to event. They run after the hooks already registered.
func (e *Events) On(event Event, hooks ...inject.Hook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks[event] = append(e.hooks[event], hooks...)
}

// Len returns the number of hooks registered for event.
func (e *Events) Len(event Event) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.hooks[event])
}

// Trigger runs the hooks of event in order. The first failing hook aborts
// the phase; its error is returned wrapped with the phase and hook index.
// Hooks are not de-duplicated: triggering twice runs them twice.
func (e *Events) Trigger(ctx context.Context, event Event, i *inject.Container) error {
	e.mu.Lock()
	hooks := append([]inject.Hook(nil), e.hooks[event]...)
	log := e.log
	e.mu.Unlock()

	log = log.WithField("event", event.String())
	log.WithField("hooks", len(hooks)).Debug("triggering lifecycle event")

	for idx, hook := range hooks {
		if err := hook.Handle(ctx, i); err != nil {
			return errors.Wrapf(err, "%s hook %d", event, idx)
		}
	}
	return nil
}
