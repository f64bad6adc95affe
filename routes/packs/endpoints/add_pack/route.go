package add_pack

import (
	"net/http"

	"magpie/api"
	botassets "magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-playground/validator/v10"
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

	checked, cerr := validators.CheckPack(d.Context, d.State.Checks, payload)

	if cerr != nil {
		return botassets.CheckResponse(cerr)
	}

	var count int

	err = d.State.Pool.QueryRow(d.Context, "SELECT COUNT(*) FROM packs WHERE url = $1", checked.URL).Scan(&count)

	if err != nil {
		d.State.Logger.Error("Failed to check pack url", zap.Error(err), zap.String("url", checked.URL))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if count > 0 {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "A pack with this URL already exists",
			},
		}
	}

	_, err = d.State.Pool.Exec(
		d.Context,
		"INSERT INTO packs (owner, url, name, short, bots, icon, banner) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		d.Auth.ID,
		checked.URL,
		checked.Name,
		checked.Short,
		checked.Bots,
		checked.Icon,
		checked.Banner,
	)

	if err != nil {
		d.State.Logger.Error("Failed to insert pack", zap.Error(err), zap.String("url", checked.URL))
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason:  "Failed to save this pack: " + err.Error(),
				Context: "store_error",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Pack created successfully"),
	}
}
