// Package clock abstracts the wall clock so time-dependent computations can
// run against a fixed instant in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// System reads time.Now on every call. Nothing is cached.
var System Clock = Func(time.Now)

type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
