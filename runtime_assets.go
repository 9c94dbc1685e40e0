package formfield

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser script that drives the password toggle
// and live strength breakdown of rendered forms.
//
// Typical mount:
//
//	mux.Handle("/formfield/",
//	  http.StripPrefix("/formfield/",
//	    http.FileServerFS(formfield.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
