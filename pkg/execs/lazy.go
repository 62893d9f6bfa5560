package execs

import (
	"fmt"
	"regexp"
	"sync"
)

// LazyRegexp compiles a regular expression at most once, even when accessed
// concurrently.
type LazyRegexp struct {
	err     error
	regex   *regexp.Regexp
	pattern string
	once    sync.Once
}

// NewLazyRegexp creates a new [LazyRegexp] for pattern.
func NewLazyRegexp(pattern string) *LazyRegexp {
	return &LazyRegexp{pattern: pattern}
}

// Get returns the compiled regular expression.
func (lr *LazyRegexp) Get() (*regexp.Regexp, error) {
	lr.once.Do(func() {
		lr.regex, lr.err = regexp.Compile(lr.pattern)
		if lr.err != nil {
			lr.err = fmt.Errorf("compile pattern %q: %w", lr.pattern, lr.err)
		}
	})

	return lr.regex, lr.err
}
