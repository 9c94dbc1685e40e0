// Package html renders forms as server-side HTML through pongo2 templates.
// Decorations and message text are sanitised with bluemonday and theme tokens
// may replace the built-in input theme classes.
package html
