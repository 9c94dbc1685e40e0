// Package render defines the renderer contract shared by the HTML and terminal
// renderers together with the form-level model they consume.
package render
