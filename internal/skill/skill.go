// Package skill defines the capability abstraction for dispatch: a skill is
// anything that accepts a parameter mapping and either returns a payload or
// fails, resolved by name through a Registry.
package skill

import "context"

// Params is the parameter mapping handed to a skill invocation.
type Params map[string]any

// Skill is the interface every capability provider implements. The context
// carries the executor's deadline; providers that honor cancellation stop
// early, providers that don't simply keep running after the caller has
// already been released.
type Skill interface {
	Invoke(ctx context.Context, params Params) (any, error)
}

// Func adapts a plain function to the Skill interface.
type Func func(ctx context.Context, params Params) (any, error)

// Invoke calls f.
func (f Func) Invoke(ctx context.Context, params Params) (any, error) {
	return f(ctx, params)
}

// Descriptor pairs a registered skill with its dispatch metadata. Descriptors
// are immutable after registration.
type Descriptor struct {
	Name  string
	Skill Skill

	// CostLevel is advisory (1 cheapest through 5). It is recorded for
	// operators but not consulted by dispatch decisions; every live call
	// is costed flat.
	CostLevel int

	// DataType selects the TTL and timeout policy for invocations.
	DataType string
}
