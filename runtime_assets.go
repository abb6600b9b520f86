package regform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// AssetsFS exposes the stylesheet the vanilla renderer inlines, so Go
// applications that serve pages with their own layout can link it instead.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(regform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
