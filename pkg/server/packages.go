package server

import (
	"net/http"
	"strconv"

	"github.com/kekaadrenalin/hookedit/pkg/api"
)

const defaultSearchLimit = 20

func (h *handler) searchPackages(w http.ResponseWriter, r *http.Request) {
	limit := defaultSearchLimit
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	writeJSON(w, http.StatusOK, api.SearchResponse{
		Packages: h.packages.Search(r.URL.Query().Get("ts_query_web"), limit),
	})
}
