package packs

import (
	"magpie/api"
	"magpie/routes/packs/endpoints/add_pack"
	"magpie/routes/packs/endpoints/delete_pack"
	"magpie/routes/packs/endpoints/edit_pack"
	"magpie/routes/packs/endpoints/get_pack"
	"magpie/state"

	"github.com/go-chi/chi/v5"
)

const tagName = "Bot Packs"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to bot packs"
}

func (b Router) Routes(s *state.State, r *chi.Mux) {
	api.Route{
		Method:  api.GET,
		Pattern: "/packs/{id}",
		OpId:    "get_pack",
		Handler: get_pack.Route,
	}.Route(s, r)

	api.Route{
		Method:  api.POST,
		Pattern: "/users/{user_id}/packs",
		OpId:    "add_pack",
		Handler: add_pack.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.PATCH,
		Pattern: "/users/{user_id}/packs",
		OpId:    "edit_pack",
		Handler: edit_pack.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.DELETE,
		Pattern: "/users/{user_id}/packs/{url}",
		OpId:    "delete_pack",
		Handler: delete_pack.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)
}
