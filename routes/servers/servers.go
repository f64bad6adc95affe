package servers

import (
	"magpie/api"
	"magpie/routes/servers/endpoints/appeal_server"
	"magpie/routes/servers/endpoints/get_server"
	"magpie/state"

	"github.com/go-chi/chi/v5"
)

const tagName = "Servers"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to servers on the list"
}

func (b Router) Routes(s *state.State, r *chi.Mux) {
	api.Route{
		Method:  api.GET,
		Pattern: "/servers/{id}",
		OpId:    "get_server",
		Handler: get_server.Route,
	}.Route(s, r)

	api.Route{
		Method:  api.POST,
		Pattern: "/users/{user_id}/servers/{server_id}/appeal",
		OpId:    "appeal_server",
		Handler: appeal_server.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)
}
