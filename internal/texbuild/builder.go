// Package texbuild provides the document builder: named, nestable LaTeX
// environments and commands with an append/scope contract, rendered to a
// .tex source file.
package texbuild

import (
	"fmt"
	"os"
	"strings"
)

const indentStep = "  "

// Builder accumulates a LaTeX document: a preamble and a body of nested
// scopes. It is owned by exactly one document build for its lifetime and is
// not safe for concurrent use.
type Builder struct {
	docClass Command
	preamble []string
	body     []string
	stack    []Environment
}

// NewBuilder returns an empty builder for the given document class command.
func NewBuilder(docClass Command) *Builder {
	return &Builder{docClass: docClass}
}

// Preamble appends a primitive to the document preamble.
func (b *Builder) Preamble(p Primitive) {
	b.preamble = append(b.preamble, p.Tex())
}

// Append adds one leaf primitive to the current scope.
func (b *Builder) Append(p Primitive) {
	b.body = append(b.body, b.indent()+p.Tex())
}

// Begin opens a named nestable scope. Every Begin must be balanced by an
// End; prefer Scope, which guarantees the close on every exit path.
func (b *Builder) Begin(env Environment) {
	b.body = append(b.body, b.indent()+env.begin())
	b.stack = append(b.stack, env)
}

// End closes the innermost open scope.
func (b *Builder) End() error {
	if len(b.stack) == 0 {
		return &BuildError{Message: "end without a matching begin"}
	}
	env := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.body = append(b.body, b.indent()+env.end())
	return nil
}

// Scope runs fn inside env. The scope is closed on every exit path, so a
// failing fn never leaks an unclosed environment into the buffer.
func (b *Builder) Scope(env Environment, fn func() error) error {
	b.Begin(env)
	defer func() {
		// the matching Begin above guarantees End cannot fail here
		_ = b.End()
	}()
	return fn()
}

// Anchor binds a reference label to the current output position.
func (b *Builder) Anchor(label string) {
	b.Append(Command{Name: "label", Arguments: []string{label}})
}

// Depth returns the number of currently open scopes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// String renders the accumulated document source.
func (b *Builder) String() string {
	var sb strings.Builder
	sb.WriteString(b.docClass.Tex())
	sb.WriteString("\n")
	for _, line := range b.preamble {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\\begin{document}\n")
	for _, line := range b.body {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\\end{document}\n")
	return sb.String()
}

// Finalize serializes the buffer to path. All scopes must be closed.
func (b *Builder) Finalize(path string) error {
	if len(b.stack) != 0 {
		return &BuildError{
			Message: fmt.Sprintf("cannot finalize with %d open scope(s), innermost %q",
				len(b.stack), b.stack[len(b.stack)-1].Name),
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &BuildError{Message: "failed to write document", Cause: err}
	}
	return nil
}

func (b *Builder) indent() string {
	return strings.Repeat(indentStep, len(b.stack))
}
