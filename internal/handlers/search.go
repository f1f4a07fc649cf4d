package handlers

import (
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (handler *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results, err := handler.searchService.Search(ctx, middleware.GetUser(ctx).ID, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err, "searching")
		return
	}
	writeJSON(w, http.StatusOK, results)
}
