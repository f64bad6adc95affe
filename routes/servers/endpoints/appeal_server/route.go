package appeal_server

import (
	"net/http"
	"time"

	"magpie/acl"
	"magpie/api"
	"magpie/constants"
	"magpie/ratelimit"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

var compiledMessages = api.CompileValidationErrors(types.Appeal{})

func serverOwners(d api.RouteData, serverID string) ([]types.Owner, error) {
	var owners []types.Owner

	err := pgxscan.Select(d.Context, d.State.Pool, &owners, "SELECT owner_id, main FROM server_owners WHERE server_id = $1 ORDER BY main DESC, owner_id ASC", serverID)

	if err != nil {
		return nil, err
	}

	return owners, nil
}

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

	var serverID string

	err = d.State.Pool.QueryRow(d.Context, "SELECT server_id FROM servers WHERE "+constants.ResolveServerSQL, chi.URLParam(r, "server_id")).Scan(&serverID)

	if err == pgx.ErrNoRows {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to resolve server", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	owners, err := serverOwners(d, serverID)

	if err != nil {
		d.State.Logger.Error("Failed to fetch server owners", zap.Error(err), zap.String("serverID", serverID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if payload.RequestType != types.AppealTypeReport && !acl.CanEdit(owners, d.Auth.ID) {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only an owner of this server can appeal on its behalf",
			},
		}
	}

	if payload.RequestType == types.AppealTypeCertification {
		var serverState types.EntityState
		var bannerCard, bannerPage pgtype.Text
		var memberCount int

		err = d.State.Pool.QueryRow(d.Context, "SELECT state, banner_card, banner_page, member_count FROM servers WHERE server_id = $1", serverID).Scan(&serverState, &bannerCard, &bannerPage, &memberCount)

		if err != nil {
			d.State.Logger.Error("Failed to fetch server for certification", zap.Error(err), zap.String("serverID", serverID))
			return api.DefaultResponse(http.StatusInternalServerError)
		}

		if cerr := validators.CheckCertification(api.TargetTypeServer, serverState, bannerCard.String, bannerPage.String, memberCount); cerr != nil {
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

	err = d.State.Relay.Appeal(api.TargetTypeServer, serverID, d.Auth.ID, payload)

	if err != nil {
		d.State.Logger.Error("Failed to relay appeal", zap.Error(err), zap.String("serverID", serverID))
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
