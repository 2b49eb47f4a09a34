// SPDX-License-Identifier: MIT

package cvx

import (
	"fmt"
	"math"

	cvxopt "github.com/hrautila/cvx"
)

// Defaults (single source of truth for zero-value Settings fields).
const (
	// DefaultTolerance is the absolute gap and feasibility tolerance handed to
	// the interior-point solver.
	DefaultTolerance = 1e-7

	// DefaultRelTolerance is the relative gap tolerance.
	DefaultRelTolerance = 1e-6

	// DefaultMaxIterations caps the interior-point iterations.
	DefaultMaxIterations = 100

	// DefaultInaccurateFactor widens Tolerance when judging OptimalInaccurate.
	DefaultInaccurateFactor = 1e3

	// DefaultCacheSize is the number of cone factorizations kept alive.
	DefaultCacheSize = 64
)

// Settings holds the knobs of the default Solver. Zero fields take the
// matching Default* value.
type Settings struct {
	// Tolerance is the absolute gap and primal/dual feasibility tolerance.
	// Must be in (0, 1).
	Tolerance float64

	// RelTolerance is the relative gap tolerance. Must be in (0, 1).
	RelTolerance float64

	// MaxIterations is the interior-point iteration limit.
	MaxIterations int

	// InaccurateFactor ≥ 1: a solve that stops short of an optimal status but
	// whose own residual check is within InaccurateFactor·Tolerance reports
	// OptimalInaccurate.
	InaccurateFactor float64

	// CacheSize is the capacity of the cone factor cache.
	CacheSize int
}

// DefaultSettings returns Settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:        DefaultTolerance,
		RelTolerance:     DefaultRelTolerance,
		MaxIterations:    DefaultMaxIterations,
		InaccurateFactor: DefaultInaccurateFactor,
		CacheSize:        DefaultCacheSize,
	}
}

// resolve fills zero fields with defaults and validates the rest.
func (s Settings) resolve() (Settings, error) {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.RelTolerance == 0 {
		s.RelTolerance = DefaultRelTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	if s.InaccurateFactor == 0 {
		s.InaccurateFactor = DefaultInaccurateFactor
	}
	if s.CacheSize == 0 {
		s.CacheSize = DefaultCacheSize
	}

	switch {
	case math.IsNaN(s.Tolerance) || s.Tolerance <= 0 || s.Tolerance >= 1:
		return s, fmt.Errorf("tolerance %g: %w", s.Tolerance, ErrBadSettings)
	case math.IsNaN(s.RelTolerance) || s.RelTolerance <= 0 || s.RelTolerance >= 1:
		return s, fmt.Errorf("relative tolerance %g: %w", s.RelTolerance, ErrBadSettings)
	case s.MaxIterations < 0:
		return s, fmt.Errorf("max iterations %d: %w", s.MaxIterations, ErrBadSettings)
	case math.IsNaN(s.InaccurateFactor) || s.InaccurateFactor < 1:
		return s, fmt.Errorf("inaccurate factor %g: %w", s.InaccurateFactor, ErrBadSettings)
	case s.CacheSize < 0:
		return s, fmt.Errorf("cache size %d: %w", s.CacheSize, ErrBadSettings)
	}

	return s, nil
}

// solverOptions translates the resolved settings for the interior-point solver.
func (s Settings) solverOptions() *cvxopt.SolverOptions {
	var opts cvxopt.SolverOptions
	opts.AbsTol = s.Tolerance
	opts.RelTol = s.RelTolerance
	opts.FeasTol = s.Tolerance
	opts.MaxIter = s.MaxIterations

	return &opts
}
