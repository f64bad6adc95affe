package bots

import (
	"magpie/api"
	"magpie/routes/bots/endpoints/add_bot"
	"magpie/routes/bots/endpoints/appeal_bot"
	"magpie/routes/bots/endpoints/delete_bot"
	"magpie/routes/bots/endpoints/edit_bot"
	"magpie/routes/bots/endpoints/get_bot"
	"magpie/routes/bots/endpoints/import_bot"
	"magpie/routes/bots/endpoints/transfer_bot"
	"magpie/routes/bots/endpoints/vote_bot"
	"magpie/state"

	"github.com/go-chi/chi/v5"
)

const tagName = "Bots"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to bots on the list"
}

func (b Router) Routes(s *state.State, r *chi.Mux) {
	api.Route{
		Method:  api.GET,
		Pattern: "/bots/{id}",
		OpId:    "get_bot",
		Handler: get_bot.Route,
	}.Route(s, r)

	api.Route{
		Method:  api.POST,
		Pattern: "/users/{user_id}/bots",
		OpId:    "add_bot",
		Handler: add_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.PATCH,
		Pattern: "/users/{user_id}/bots",
		OpId:    "edit_bot",
		Handler: edit_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.PATCH,
		Pattern: "/users/{user_id}/bots/{bot_id}/main-owner",
		OpId:    "transfer_bot",
		Handler: transfer_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.DELETE,
		Pattern: "/users/{user_id}/bots/{bot_id}",
		OpId:    "delete_bot",
		Handler: delete_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.POST,
		Pattern: "/users/{user_id}/bots/{bot_id}/import",
		OpId:    "import_bot",
		Handler: import_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.POST,
		Pattern: "/users/{user_id}/bots/{bot_id}/appeal",
		OpId:    "appeal_bot",
		Handler: appeal_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)

	api.Route{
		Method:  api.PUT,
		Pattern: "/users/{user_id}/bots/{bot_id}/votes",
		OpId:    "vote_bot",
		Handler: vote_bot.Route,
		Auth: []api.AuthType{
			{
				URLVar: "user_id",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(s, r)
}
