package patchfile

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Check is one verification to run. An empty Entry means the whole file.
type Check struct {
	Path     string `yaml:"path"`
	Entry    string `yaml:"entry,omitempty"`
	Expected string `yaml:"md5"`
}

// Run performs the check and returns the computed fingerprint alongside the outcome.
func (c Check) Run() (string, error) {
	if !IsWellFormed(c.Expected) {
		return "", fmt.Errorf("%w: expected %q", ErrMalformedFingerprint, c.Expected)
	}
	var (
		actual string
		err    error
	)
	if c.Entry == "" {
		actual, err = DigestFile(c.Path)
	} else {
		actual, err = DigestEntry(c.Path, c.Entry)
	}
	if err != nil {
		return "", err
	}
	name := c.Path
	if c.Entry != "" {
		name += "!" + c.Entry
	}
	return actual, compare(name, c.Expected, actual)
}

// Result is the outcome of one Check.
type Result struct {
	Check  Check
	Actual string
	Err    error
}

// OK reports whether the check passed.
func (r Result) OK() bool { return r.Err == nil }

// VerifyAll runs checks concurrently with at most workers in flight (NumCPU when
// workers < 1). Checks must name disjoint files or only read shared ones. Results are
// in input order. Once ctx is done, checks not yet started report ctx.Err(); a check
// already hashing runs to completion.
func VerifyAll(ctx context.Context, checks []Check, workers int) []Result {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(checks))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, c := range checks {
		results[i].Check = c
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Actual, results[i].Err = c.Run()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
