package filter

import (
	"strings"

	"github.com/PTR512/movie-analytics/tmdb"
)

// Filter defines the basic interface for movie filters
type Filter interface {
	// Evaluate checks if a movie matches the filter criteria
	Evaluate(movie tmdb.Movie) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// ParseAndCreateFilter parses a filter expression and returns a filter function
func ParseAndCreateFilter(expression string) (func(tmdb.Movie) bool, error) {
	if strings.TrimSpace(expression) == "" {
		// Empty filter matches everything
		return func(tmdb.Movie) bool { return true }, nil
	}

	compiled, err := NewExprCompiler().Compile(expression)
	if err != nil {
		return nil, err
	}

	return compiled.Evaluate, nil
}
