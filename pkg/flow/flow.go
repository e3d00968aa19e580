// Package flow provides a lazy composition engine for sequencing calibration
// decisions. A flow threads an immutable environment value through an ordered
// chain of steps: each step receives the current environment and produces a
// replacement, and conditional branches select at most one of two transforms
// based on a predicate evaluated against a concrete value.
//
// Evaluation is deferred until forced by If or End, and every node memoizes
// its result, so a transform passed to Do runs at most once no matter how many
// times the chain is read. The engine performs no error handling of its own:
// a panic raised by a predicate or transform surfaces unchanged at whichever
// call forced evaluation.
package flow

// Environment marks a type as eligible for threading through a flow.
// The marker method carries no behavior; it exists so that only types
// declared as flow environments satisfy the generic bound.
type Environment interface {
	FlowEnvironment()
}

// Step is a lazily evaluated computation producing an environment value.
// A Step holds either a pending closure or, once forced, the cached result.
type Step[E Environment] struct {
	fn     func() E
	forced bool
	value  E
}

// Start wraps an environment value as the entry point of a flow.
func Start[E Environment](value E) *Step[E] {
	return &Step[E]{value: value, forced: true}
}

// Continue wraps an environment value to resume a flow after an external
// checkpoint. It is identical to Start; the name signals intent at call sites.
func Continue[E Environment](value E) *Step[E] {
	return Start(value)
}

// Do sequences a transform after this step. The returned step, when forced,
// first forces the receiver, applies transform to its value, and forces the
// step the transform produced. The transform itself runs at most once.
func (s *Step[E]) Do(transform func(E) *Step[E]) *Step[E] {
	return &Step[E]{
		fn: func() E {
			return transform(s.force()).force()
		},
	}
}

// If forces the step and evaluates predicate against the materialized value,
// opening a conditional branch. Forcing happens before the predicate runs so
// that the predicate always observes a concrete environment, never a pending
// computation; only the branch consequences remain deferred.
func (s *Step[E]) If(predicate func(E) bool) Branch[E] {
	value := s.force()
	return Branch[E]{
		env:  Start(value),
		cond: predicate(value),
	}
}

// End forces full evaluation and returns the resulting environment value.
// Subsequent calls return the cached value without recomputation.
func (s *Step[E]) End() E {
	return s.force()
}

func (s *Step[E]) force() E {
	if !s.forced {
		s.value = s.fn()
		s.fn = nil
		s.forced = true
	}
	return s.value
}
