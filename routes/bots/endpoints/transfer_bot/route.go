package transfer_bot

import (
	"net/http"

	"magpie/acl"
	"magpie/api"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TransferRequest struct {
	NewOwner string `json:"new_owner" validate:"required,numeric" msg:"The new owner must be a numeric snowflake"`
}

var compiledMessages = api.CompileValidationErrors(TransferRequest{})

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	var payload TransferRequest

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

	if cerr := validators.CheckTransfer(d.Context, d.State.Checks.Store, owners, d.Auth.ID, payload.NewOwner); cerr != nil {
		resp := assets.CheckResponse(cerr)

		if cerr.Code == validators.CodeNotMainOwner {
			resp.Status = http.StatusForbidden
		}

		return resp
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
				Reason: "Only the main owner of this bot can transfer its ownership",
			},
		}
	}

	// The old main owner stays on as a regular owner
	_, err = tx.Exec(d.Context, "UPDATE bot_owners SET main = false WHERE bot_id = $1 AND main = true", botID)

	if err != nil {
		d.State.Logger.Error("Failed to demote main owner", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	_, err = tx.Exec(d.Context, "INSERT INTO bot_owners (bot_id, owner_id, main) VALUES ($1, $2, true) ON CONFLICT (bot_id, owner_id) DO UPDATE SET main = true", botID, payload.NewOwner)

	if err != nil {
		d.State.Logger.Error("Failed to promote new owner", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit ownership transfer", zap.Error(err), zap.String("botID", botID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = d.State.Relay.OwnershipTransferred(botID, d.Auth.ID, payload.NewOwner)

	if err != nil {
		d.State.Logger.Error("Failed to relay ownership transfer", zap.Error(err), zap.String("botID", botID))
		return api.HttpResponse{
			Json: types.ApiError{
				Done:    true,
				Reason:  "Ownership transferred, but we couldn't notify staff: " + err.Error(),
				Context: "relay_failed",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Ownership transferred successfully"),
	}
}
