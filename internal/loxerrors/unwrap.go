package loxerrors

// Typed errors in this package expose their cause through Unwrap, the
// aggregates built with errors.Join expose their members through the
// multi-error form. Neither interface is exported by the errors package.
type (
	unwrapInterface interface {
		Unwrap() error
	}
	joinInterface interface {
		Unwrap() []error
	}
)
