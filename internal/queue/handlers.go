package queue

import (
	"github.com/hibiken/asynq"
)

// HandlersRegistry collects task handlers behind one asynq mux so the
// worker binary registers everything in a single place.
type HandlersRegistry struct {
	mux *asynq.ServeMux
}

func NewHandlersRegistry() *HandlersRegistry {
	return &HandlersRegistry{
		mux: asynq.NewServeMux(),
	}
}

// Register binds a handler to a task type, e.g. TypeDocumentProcess.
func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
}

// Mux returns the assembled mux for asynq's server Run.
func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}
