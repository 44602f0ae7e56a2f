// Package swaggerkit mounts the Swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "dashkit/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Path is where the UI and document are served
const Path = "/api/docs"

// Mount serves the UI at Path and the document at Path/doc.json when enabled.
// serverURL is the base the documented paths are relative to
func Mount(r phttp.Router, enabled bool, serverURL string) {
	if !enabled {
		return
	}
	r.Get(Path, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, Path+"/", http.StatusPermanentRedirect)
	})
	r.Get(Path+"/doc.json", serveDocJSON(serverURL))
	r.Handle(Path+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(Path+"/doc.json"),
	))
}
