package delete_bot

import (
	"net/http"

	"magpie/acl"
	"magpie/api"
	"magpie/routes/bots/assets"
	"magpie/types"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	botID, err := assets.ResolveBot(d.Context, d.State, chi.URLParam(r, "bot_id"))

	if err != nil {
		d.State.Logger.Error("Failed to resolve bot", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if botID == "" {
		return api.DefaultResponse(http.StatusNotFound)
	}

	owners, err := assets.Owners(d.Context, d.State.Pool, botID)

	if err != nil {
		d.State.Logger.Error("Failed to fetch bot owners", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if !acl.CanTransferOrDelete(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only the main owner of this bot can delete it",
			},
		}
	}

	tx, err := d.State.Pool.Begin(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to begin transaction", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	defer tx.Rollback(d.Context)

	owners, err = assets.Owners(d.Context, tx, botID)

	if err != nil {
		d.State.Logger.Error("Failed to re-fetch bot owners", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if !acl.CanTransferOrDelete(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only the main owner of this bot can delete it",
			},
		}
	}

	for _, sql := range []string{
		"DELETE FROM votes WHERE bot_id = $1",
		"DELETE FROM bot_owners WHERE bot_id = $1",
		"DELETE FROM bots WHERE bot_id = $1",
	} {
		_, err = tx.Exec(d.Context, sql, botID)

		if err != nil {
			d.State.Logger.Error("Failed to delete bot", zap.Error(err), zap.String("botID", botID))
			return api.DefaultResponse(http.StatusInternalServerError)
		}
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit bot delete", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = d.State.Relay.BotDeleted(botID, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to relay bot delete", zap.Error(err), zap.String("botID", botID))
		return api.HttpResponse{
			Json: types.ApiError{
				Done:    true,
				Reason:  "Bot deleted, but we couldn't notify staff: " + err.Error(),
				Context: "relay_failed",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Bot deleted successfully"),
	}
}
