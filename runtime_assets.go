package formmask

import (
	"embed"
	"io/fs"
)

// RuntimeScript is the file name of the browser bootstrap inside
// RuntimeAssetsFS.
const RuntimeScript = "formmask-datetime.js"

//go:embed pkg/runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser bootstrap that hands the installed
// data-mask attributes to jQuery Mask Plugin.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(formmask.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
