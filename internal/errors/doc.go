// Package errors provides structured, actionable error messages for quickcode.
//
// Every failure the CLI surfaces carries a stable code (e.g. "E110") that maps
// to a short message, a longer explanation and a documentation link. Callers
// refine a registered error with a detail line, a suggestion, or a wrapped
// cause:
//
//	err := errors.New("E110").
//	    WithDetail(`Component "Buton" is not in the registry`).
//	    WithSuggestion("Run 'quickcode list' to see available components")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR E110: Component not found
//	//
//	//   Component "Buton" is not in the registry
//	//
//	//   Hint: Run 'quickcode list' to see available components
//	//
//	//   Learn more: https://github.com/iamsufiyan560/QuickCode#E110
//
// # Error Categories
//
//   - config: quickcode.json could not be read or is invalid
//   - registry: the component map could not be fetched or decoded
//   - install: a component, hook or dependency could not be installed
//   - cli: bad command line input
package errors
