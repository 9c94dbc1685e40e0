// Package field binds a single input to a form state provider. A Field
// composes the requested rules, registers them together with the pattern and
// numeric constraints, forwards change/blur/focus events and assembles the one
// message shown below the input.
package field
