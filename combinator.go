// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

// A parseFunc recognizes a T at the front of its input. On success it returns
// the value and the remaining input. On failure it returns an error, and the
// remaining input is not meaningful.
type parseFunc[T any] func(input) (T, input, error)

// alt tries each of ps in order on the same input, and returns the result of
// the first one that succeeds. If one fails with a committed error, alt stops
// and returns that error. Otherwise, if all fail, alt reports the error from
// the alternative that progressed furthest.
func alt[T any](in input, ps ...parseFunc[T]) (T, input, error) {
	var zero T
	var best error
	for _, p := range ps {
		v, rest, err := p(in)
		if err == nil {
			return v, rest, nil
		} else if isCommitted(err) {
			return zero, in, err
		}
		best = furthest(best, err)
	}
	return zero, in, best
}

// sepList parses zero or more elements separated by sep. A separator is only
// consumed if an element follows it, so a trailing separator is left in the
// remaining input. On success err is nil, and stop is the recoverable error
// that ended the list, which callers may use to improve their own reports.
// The returned slice is never nil.
func sepList[T any](in input, sep func(input) (input, bool), elem parseFunc[T]) (out []T, rest input, stop, err error) {
	out = []T{}
	v, next, err := elem(in)
	if err != nil {
		if isCommitted(err) {
			return nil, in, nil, err
		}
		return out, in, err, nil
	}
	out = append(out, v)
	rest = next
	for {
		after, ok := sep(rest)
		if !ok {
			return out, rest, nil, nil
		}
		v, next, err := elem(after)
		if err != nil {
			if isCommitted(err) {
				return nil, in, nil, err
			}
			return out, rest, err, nil
		}
		out = append(out, v)
		rest = next
	}
}

// lift converts a parseFunc for T into one for U using f.
func lift[T, U any](p parseFunc[T], f func(T) U) parseFunc[U] {
	return func(in input) (U, input, error) {
		v, rest, err := p(in)
		if err != nil {
			var zero U
			return zero, in, err
		}
		return f(v), rest, nil
	}
}
