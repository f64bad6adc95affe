package edit_bot

import (
	"net/http"
	"strconv"

	"magpie/acl"
	"magpie/api"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/utils"
	"magpie/validators"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = api.CompileValidationErrors(types.Candidate{})

var (
	updateCols = []string{"prefix", "vanity", "short", "long", "invite", "website", "donate", "github", "privacy_policy", "banner_card", "banner_page", "tags", "features", "guild_count"}
	updateSQL  = "UPDATE bots SET " + utils.UpdateParams(updateCols) + " WHERE bot_id = $" + strconv.Itoa(len(updateCols)+1)
)

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

	// Existence before ownership. An unknown bot is a 404 no matter who
	// asks; ownership failures only apply to bots that exist.
	owners, err := assets.Owners(d.Context, d.State.Pool, payload.ID)

	if err != nil {
		d.State.Logger.Error("Failed to fetch bot owners", zap.Error(err), zap.String("botID", payload.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if len(owners) == 0 {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if !acl.CanEdit(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "You are not allowed to edit this bot",
			},
		}
	}

	checked, cerr := validators.CheckBot(d.Context, d.State.Checks, validators.ModeEdit, payload)

	if cerr != nil {
		return assets.CheckResponse(cerr)
	}

	tx, err := d.State.Pool.Begin(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to begin transaction", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	defer tx.Rollback(d.Context)

	// Re-check ownership under the transaction so a concurrent transfer
	// can't race the write
	owners, err = assets.Owners(d.Context, tx, payload.ID)

	if err != nil {
		d.State.Logger.Error("Failed to re-fetch bot owners", zap.Error(err), zap.String("botID", payload.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if !acl.CanEdit(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "You are not allowed to edit this bot",
			},
		}
	}

	_, err = tx.Exec(
		d.Context,
		updateSQL,
		checked.Prefix,
		checked.Vanity,
		checked.Short,
		checked.Long,
		checked.Invite,
		checked.Website,
		checked.Donate,
		checked.Github,
		checked.PrivacyPolicy,
		checked.BannerCard,
		checked.BannerPage,
		checked.Tags,
		checked.Features,
		checked.GuildCount,
		checked.ID,
	)

	if err != nil {
		d.State.Logger.Error("Failed to update bot", zap.Error(err), zap.String("botID", checked.ID))
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason:  "Failed to save this bot: " + err.Error(),
				Context: "store_error",
			},
		}
	}

	// Replace the additional owner list; the main owner row only moves
	// through the transfer endpoint
	_, err = tx.Exec(d.Context, "DELETE FROM bot_owners WHERE bot_id = $1 AND main = false", checked.ID)

	if err != nil {
		d.State.Logger.Error("Failed to clear bot owners", zap.Error(err), zap.String("botID", checked.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	mainOwner, _ := acl.MainOwner(owners)

	for _, o := range checked.Owners {
		if o.ID == mainOwner.ID {
			continue
		}

		_, err = tx.Exec(d.Context, "INSERT INTO bot_owners (bot_id, owner_id, main) VALUES ($1, $2, false) ON CONFLICT (bot_id, owner_id) DO NOTHING", checked.ID, o.ID)

		if err != nil {
			d.State.Logger.Error("Failed to insert bot owner", zap.Error(err), zap.String("botID", checked.ID))
			return api.DefaultResponse(http.StatusInternalServerError)
		}
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit bot update", zap.Error(err), zap.String("botID", checked.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = d.State.Relay.BotEdited(checked.ID, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to relay bot edit", zap.Error(err), zap.String("botID", checked.ID))
		return api.HttpResponse{
			Json: types.ApiError{
				Done:    true,
				Reason:  "Bot edited, but we couldn't notify staff: " + err.Error(),
				Context: "relay_failed",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Bot edited successfully"),
	}
}
