// Package texbuild provides the document builder: named, nestable LaTeX
// environments and commands with an append/scope contract, rendered to a
// .tex source file.
package texbuild

import "fmt"

// BuildError represents a structural error in the output buffer, such as an
// unbalanced scope.
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("build error: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
