package chatlink

import (
	"encoding/json"
	"net/http"

	"github.com/tukang-design/studio-api/internal/catalog"
)

// Handler serves chat deep links for the frontend to open.
type Handler struct {
	builder *Builder
}

// NewHandler creates a new chat link handler
func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

// LinkResponse carries the constructed deep link.
type LinkResponse struct {
	URL string `json:"url"`
}

// GetLink handles GET /chat-link requests. Optional serviceId and region
// query params pre-fill a package enquiry.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	region := catalog.Region(r.URL.Query().Get("region"))
	if !region.Valid() {
		region = catalog.RegionINT
	}
	svc := catalog.ServiceByID(r.URL.Query().Get("serviceId"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LinkResponse{
		URL: h.builder.PackageInterest(svc, region),
	})
}
