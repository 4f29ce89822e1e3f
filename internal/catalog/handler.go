package catalog

import (
	"encoding/json"
	"net/http"
)

// CatalogResponse is the public catalog payload the frontend renders.
type CatalogResponse struct {
	Services  []ServiceOption `json:"services"`
	AddOns    []AddOn         `json:"addOns"`
	MainGoals []string        `json:"mainGoals"`
}

// ServeCatalog handles GET /catalog requests. The catalog is immutable so
// responses are cacheable.
func ServeCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	json.NewEncoder(w).Encode(CatalogResponse{
		Services:  Services,
		AddOns:    AddOns,
		MainGoals: MainGoals,
	})
}
