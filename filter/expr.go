package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/PTR512/movie-analytics/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler() Compiler {
	return &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // Allow movie properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &exprFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Evaluate evaluates the filter against a movie
func (f *exprFilter) Evaluate(movie tmdb.Movie) bool {
	env := createRuntimeEnvironment(movie)

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Movies that cause evaluation errors are skipped.
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Date helpers
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["now"] = time.Now
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(movie tmdb.Movie) map[string]any {
	env := make(map[string]any, 32)

	// Add helper functions
	addHelperFunctions(env)

	// Add movie data
	env["Movie"] = movie

	// Movie-specific helpers using closures
	env["hasGenre"] = createHasGenreFunc(movie.Genres)
	env["releasedBefore"] = func(date time.Time) bool { return movie.ReleaseDate.Before(date) }
	env["releasedAfter"] = func(date time.Time) bool { return movie.ReleaseDate.After(date) }

	// Direct movie properties for convenience
	env["Title"] = movie.Title
	env["Year"] = movie.Year
	env["Rating"] = movie.Rating
	env["Genres"] = movie.Genres
	env["Popularity"] = movie.Popularity
	env["ReleaseDate"] = movie.ReleaseDate

	return env
}

func createHasGenreFunc(genres []string) func(string) bool {
	lowerGenres := make([]string, len(genres))
	for i, genre := range genres {
		lowerGenres[i] = strings.ToLower(genre)
	}
	return func(genre string) bool {
		target := strings.ToLower(genre)
		for _, g := range lowerGenres {
			if g == target {
				return true
			}
		}
		return false
	}
}
