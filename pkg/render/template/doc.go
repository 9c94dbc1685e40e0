// Package template defines the engine seam the HTML renderer renders through.
// The pongo subpackage provides the default implementation.
package template
