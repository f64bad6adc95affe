package list

import (
	"magpie/api"
	"magpie/routes/list/endpoints/get_list_index"
	"magpie/routes/list/endpoints/get_mini_index"
	"magpie/routes/list/endpoints/search_list"
	"magpie/state"

	"github.com/go-chi/chi/v5"
)

const tagName = "List Stats"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to the list as a whole"
}

func (b Router) Routes(s *state.State, r *chi.Mux) {
	api.Route{
		Method:  api.GET,
		Pattern: "/index",
		OpId:    "get_list_index",
		Handler: get_list_index.Route,
	}.Route(s, r)

	api.Route{
		Method:  api.GET,
		Pattern: "/mini-index",
		OpId:    "get_mini_index",
		Handler: get_mini_index.Route,
	}.Route(s, r)

	api.Route{
		Method:  api.GET,
		Pattern: "/search",
		OpId:    "search_list",
		Handler: search_list.Route,
	}.Route(s, r)
}
