package search

import (
	"context"
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/models"
	"github.com/lankamart/storefront/search"
)

type Response struct {
	Query   string           `json:"query"`
	Results []models.Product `json:"results"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type Searcher interface {
	Search(ctx context.Context, query string, lang models.Language) []models.Product
	Type(query string, lang models.Language) search.State
	State() search.State
}

type Suggester interface {
	Suggestions(ctx context.Context, lang models.Language) []string
}

type SearchHandler struct {
	engine    Searcher
	suggester Suggester
}

func NewSearchHandler(engine Searcher, suggester Suggester) *SearchHandler {
	return &SearchHandler{engine: engine, suggester: suggester}
}

// HandleSearch runs a one-shot search: local matches plus whatever the
// remote matcher returns before it gives up.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	lang, err := models.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query().Get("q")

	results := h.engine.Search(r.Context(), q, lang)
	if results == nil {
		results = []models.Product{}
	}
	response.OK(w, Response{Query: q, Results: results})
}

// HandleType feeds one keystroke into the live search box and returns what
// it shows right now. Remote matches arrive later via HandleState.
func (h *SearchHandler) HandleType(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Query    string `json:"query"`
		Language string `json:"lang"`
	}
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	lang, err := models.ParseLanguage(input.Language)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.OK(w, h.engine.Type(input.Query, lang))
}

func (h *SearchHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.engine.State())
}

func (h *SearchHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	lang, err := models.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(w, SuggestionsResponse{Suggestions: h.suggester.Suggestions(r.Context(), lang)})
}
