package vote_bot

import (
	"net/http"
	"time"

	"magpie/api"
	"magpie/ratelimit"
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

	wait, acquired, err := d.State.Limiter.TryAcquire(d.Context, ratelimit.ActionVote, d.Auth.ID+":"+botID)

	if err != nil {
		d.State.Logger.Error("Failed to check vote cooldown", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if !acquired {
		return api.HttpResponse{
			Status: http.StatusTooManyRequests,
			Json: types.ApiError{
				Reason: "You have already voted for this bot recently. Try again in " + wait.Round(time.Second).String(),
			},
		}
	}

	tx, err := d.State.Pool.Begin(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to begin transaction", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	defer tx.Rollback(d.Context)

	_, err = tx.Exec(d.Context, "INSERT INTO votes (user_id, bot_id) VALUES ($1, $2)", d.Auth.ID, botID)

	if err != nil {
		d.State.Logger.Error("Failed to record vote", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	_, err = tx.Exec(d.Context, "UPDATE bots SET votes = votes + 1 WHERE bot_id = $1", botID)

	if err != nil {
		d.State.Logger.Error("Failed to bump vote count", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit vote", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = d.State.Relay.VoteCast(botID, d.Auth.ID)

	if err != nil {
		// Vote relays are noise, not state. Log and move on.
		d.State.Logger.Error("Failed to relay vote", zap.Error(err), zap.String("botID", botID))
	}

	return api.HttpResponse{
		Json: types.Done("Vote counted!"),
	}
}
