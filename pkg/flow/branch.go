package flow

// Branch is an open conditional: it captures the environment as it existed
// when If was evaluated, together with the predicate outcome. Then resolves
// the true arm; the condition stays queryable until Else closes the branch.
type Branch[E Environment] struct {
	env  *Step[E]
	cond bool
}

// Then composes transform onto the branch environment when the condition
// held; otherwise the environment passes through untouched. The returned
// node still carries the condition so that Else can consult it.
func (b Branch[E]) Then(transform func(E) *Step[E]) ThenBranch[E] {
	env := b.env
	if b.cond {
		env = env.Do(transform)
	}
	return ThenBranch[E]{env: env, cond: b.cond}
}

// ThenBranch is a conditional whose true arm has been resolved. Else resolves
// the false arm and closes the branch.
type ThenBranch[E Environment] struct {
	env  *Step[E]
	cond bool
}

// Else composes transform onto the carried environment when the condition did
// not hold; otherwise it passes through. The returned node exposes only the
// final computation: the condition is no longer queryable, signaling that at
// most one of the two arms contributed a transformation.
func (b ThenBranch[E]) Else(transform func(E) *Step[E]) ClosedBranch[E] {
	env := b.env
	if !b.cond {
		env = env.Do(transform)
	}
	return ClosedBranch[E]{env: env}
}

// ClosedBranch is a fully resolved conditional. It behaves as a plain lazy
// computation: sequence further steps with Do, open a chained conditional
// with ElseIf, or force the result with End.
type ClosedBranch[E Environment] struct {
	env *Step[E]
}

// ElseIf opens a new branch chained after this one, equivalent to calling If
// on the closed branch's computation.
func (b ClosedBranch[E]) ElseIf(predicate func(E) bool) Branch[E] {
	return b.env.If(predicate)
}

// Do sequences a transform after the resolved branch.
func (b ClosedBranch[E]) Do(transform func(E) *Step[E]) *Step[E] {
	return b.env.Do(transform)
}

// End forces full evaluation and returns the resulting environment value.
func (b ClosedBranch[E]) End() E {
	return b.env.End()
}
