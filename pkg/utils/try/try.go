// Package try turns (value, error) pairs into a single value,
// mainly to keep test setup code flat.
//
// Usage:
//
//	client := try.To(rest.NewClient(prof)).OrFatal(t)
package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

// Result is a pair of value and error.
//
// When err is nil, the Result is "ok" and its value is valid.
type Result[T any] struct {
	value T
	err   error
}

func To[T any](value T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: value}
}

// Get returns the pair as it was given.
//
// When the Result is not ok, the value is zero value of T.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// OrFatal returns the value when the Result is ok.
//
// Otherwise, it calls ftl.Fatal(err).
// If ftl has "Helper()" method (like *testing.T), also that is called before `Fatal`.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(r.err)
	return *new(T)
}

func (r Result[T]) OrDefault(d T) T {
	if r.err != nil {
		return d
	}
	return r.value
}
