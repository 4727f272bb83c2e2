package shader

// Option configures shader construction.
type Option func(*options)

type options struct {
	label   string
	reflect bool
	types   *TypeTable
}

func defaultOptions() options {
	return options{reflect: true, types: DefaultTypes}
}

// WithLabel sets a label used in diagnostics.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithReflection enables or disables uniform reflection. Enabled by default.
func WithReflection(enabled bool) Option {
	return func(o *options) {
		o.reflect = enabled
	}
}

// WithTypeTable replaces the keyword table used by reflection.
// A nil table keeps DefaultTypes.
func WithTypeTable(t *TypeTable) Option {
	return func(o *options) {
		if t != nil {
			o.types = t
		}
	}
}
