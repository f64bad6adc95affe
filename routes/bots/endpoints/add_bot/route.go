package add_bot

import (
	"net/http"

	"magpie/api"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = api.CompileValidationErrors(types.Candidate{})

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	var payload types.Candidate

	hresp, ok := api.MarshalReq(d, r, &payload)

	if !ok {
		return hresp
	}

	err := d.State.Validator.Struct(payload)

	if err != nil {
		return api.ValidatorErrorResponse(compiledMessages, err.(validator.ValidationErrors))
	}

	checked, cerr := validators.CheckBot(d.Context, d.State.Checks, validators.ModeAdd, payload)

	if cerr != nil {
		return assets.CheckResponse(cerr)
	}

	tx, err := d.State.Pool.Begin(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to begin transaction", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	defer tx.Rollback(d.Context)

	err = assets.CreateBot(d.Context, tx, checked, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to insert bot", zap.Error(err), zap.String("botID", checked.ID))
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason:  "Failed to save this bot: " + err.Error(),
				Context: "store_error",
			},
		}
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit bot insert", zap.Error(err), zap.String("botID", checked.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	// The bot is in the queue at this point; a relay failure must not
	// undo that, only be surfaced
	err = d.State.Relay.BotAdded(checked, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to relay bot add", zap.Error(err), zap.String("botID", checked.ID))
		return api.HttpResponse{
			Json: types.ApiError{
				Done:    true,
				Reason:  "Bot added to the queue, but we couldn't notify staff: " + err.Error(),
				Context: "relay_failed",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Bot added to the queue! Have a seat while our staff review it"),
	}
}
