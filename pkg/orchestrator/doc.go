// Package orchestrator runs the pipeline from a form document (descriptor or
// OpenAPI) to rendered output: load, bind fields to a fresh form state,
// resolve the theme and render.
package orchestrator
