package edit_pack

import (
	"net/http"

	"magpie/api"
	botassets "magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var compiledMessages = api.CompileValidationErrors(types.PackCandidate{})

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	var payload types.PackCandidate

	hresp, ok := api.MarshalReq(d, r, &payload)

	if !ok {
		return hresp
	}

	err := d.State.Validator.Struct(payload)

	if err != nil {
		return api.ValidatorErrorResponse(compiledMessages, err.(validator.ValidationErrors))
	}

	var owner string

	err = d.State.Pool.QueryRow(d.Context, "SELECT owner FROM packs WHERE url = $1", payload.URL).Scan(&owner)

	if err == pgx.ErrNoRows {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to fetch pack owner", zap.Error(err), zap.String("url", payload.URL))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if owner != d.Auth.ID {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only the owner of this pack can edit it",
			},
		}
	}

	checked, cerr := validators.CheckPack(d.Context, d.State.Checks, payload)

	if cerr != nil {
		return botassets.CheckResponse(cerr)
	}

	_, err = d.State.Pool.Exec(
		d.Context,
		"UPDATE packs SET name = $2, short = $3, bots = $4, icon = $5, banner = $6 WHERE url = $1",
		checked.URL,
		checked.Name,
		checked.Short,
		checked.Bots,
		checked.Icon,
		checked.Banner,
	)

	if err != nil {
		d.State.Logger.Error("Failed to update pack", zap.Error(err), zap.String("url", checked.URL))
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason:  "Failed to save this pack: " + err.Error(),
				Context: "store_error",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Pack edited successfully"),
	}
}
