package valueobject

type option struct {
	parent               *Type
	finalize             func(*Object) map[string]any
	validationFailures   func(*Object, *FailureCollector)
	throwValidationError func(*Object, *FailureCollector) error
	rehydrate            func(map[string]any) error
}

func newOption(opts ...Option) *option {
	o := &option{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Option func(*option)

// Extends declares the parent type. The effective schema of the defined type
// is the merge of every ancestor's schema with its own.
func Extends(parent *Type) Option {
	return func(o *option) {
		o.parent = parent
	}
}

// Finalize installs a post-assignment hook run after all declared properties
// are assigned and before the instance freezes. The returned map is attached
// as computed properties: readable through Get, excluded from equality and
// serialization. Names colliding with declared properties are dropped.
func Finalize(fn func(*Object) map[string]any) Option {
	return func(o *option) {
		o.finalize = fn
	}
}

// ValidationFailures installs the failure-producing hook invoked by Validate.
// The closest hook in the ancestor chain wins.
func ValidationFailures(fn func(*Object, *FailureCollector)) Option {
	return func(o *option) {
		o.validationFailures = fn
	}
}

// ThrowValidationError replaces the default error-raising step of Validate.
// The hook consumes the collected failures; returning nil swallows them.
func ThrowValidationError(fn func(*Object, *FailureCollector) error) Option {
	return func(o *option) {
		o.throwValidationError = fn
	}
}

// Rehydrate installs a revival step run by the deserializer on the parsed
// field map before construction, e.g. parsing ISO date strings back into
// time.Time values so the type check sees what the schema declares.
func Rehydrate(fn func(map[string]any) error) Option {
	return func(o *option) {
		o.rehydrate = fn
	}
}
