package engine

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/monadic/internal/evaluator"
)

// Event is one crossing of the capability boundary.
type Event struct {
	EvalID    uuid.UUID
	Seq       int64
	Op        string
	Statement string
	ValueType evaluator.ObjectType // type of the value passed in or produced
	Time      time.Time
}

// Tracer receives capability-boundary events. Implementations must be
// safe for concurrent use when an Engine serves concurrent evaluations.
type Tracer interface {
	Trace(ev Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(ev Event)

func (f TracerFunc) Trace(ev Event) { f(ev) }

// LogTracer writes events through a standard logger.
type LogTracer struct {
	Logger *log.Logger
}

func (t LogTracer) Trace(ev Event) {
	if ev.Statement != "" {
		t.Logger.Printf("eval %s #%d %s %s %q", ev.EvalID, ev.Seq, ev.Op, ev.ValueType, ev.Statement)
		return
	}
	t.Logger.Printf("eval %s #%d %s %s", ev.EvalID, ev.Seq, ev.Op, ev.ValueType)
}

type multiTracer []Tracer

func (m multiTracer) Trace(ev Event) {
	for _, t := range m {
		t.Trace(ev)
	}
}
