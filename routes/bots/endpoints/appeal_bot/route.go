package appeal_bot

import (
	"net/http"
	"time"

	"magpie/acl"
	"magpie/api"
	"magpie/ratelimit"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

var compiledMessages = api.CompileValidationErrors(types.Appeal{})

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	var payload types.Appeal

	hresp, ok := api.MarshalReq(d, r, &payload)

	if !ok {
		return hresp
	}

	err := d.State.Validator.Struct(payload)

	if err != nil {
		return api.ValidatorErrorResponse(compiledMessages, err.(validator.ValidationErrors))
	}

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

	if payload.RequestType != types.AppealTypeReport && !acl.CanEdit(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only an owner of this bot can appeal on its behalf",
			},
		}
	}

	// Certification has a hard gate that runs before anything reaches
	// staff, so a hopeless request never consumes the cooldown
	if payload.RequestType == types.AppealTypeCertification {
		var botState types.EntityState
		var bannerCard, bannerPage pgtype.Text
		var guildCount int

		err = d.State.Pool.QueryRow(d.Context, "SELECT state, banner_card, banner_page, guild_count FROM bots WHERE bot_id = $1", botID).Scan(&botState, &bannerCard, &bannerPage, &guildCount)

		if err != nil {
			d.State.Logger.Error("Failed to fetch bot for certification", zap.Error(err), zap.String("botID", botID))
			return api.DefaultResponse(http.StatusInternalServerError)
		}

		if cerr := validators.CheckCertification(api.TargetTypeBot, botState, bannerCard.String, bannerPage.String, guildCount); cerr != nil {
			return assets.CheckResponse(cerr)
		}
	}

	wait, acquired, err := d.State.Limiter.TryAcquire(d.Context, ratelimit.ActionAppeal, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to check appeal cooldown", zap.Error(err), zap.String("userID", d.Auth.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if !acquired {
		return api.HttpResponse{
			Status: http.StatusTooManyRequests,
			Json: types.ApiError{
				Reason: "You have already sent a staff request recently. Try again in " + wait.Round(time.Second).String(),
			},
		}
	}

	err = d.State.Relay.Appeal(api.TargetTypeBot, botID, d.Auth.ID, payload)

	if err != nil {
		d.State.Logger.Error("Failed to relay appeal", zap.Error(err), zap.String("botID", botID))
		return api.HttpResponse{
			Status: http.StatusInternalServerError,
			Json: types.ApiError{
				Reason: "We couldn't relay your request to staff. Please try again later",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Your request has been sent to staff"),
	}
}
