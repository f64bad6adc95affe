package delete_pack

import (
	"net/http"

	"magpie/api"
	"magpie/types"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	url := chi.URLParam(r, "url")

	if url == "" {
		return api.DefaultResponse(http.StatusBadRequest)
	}

	var owner string

	err := d.State.Pool.QueryRow(d.Context, "SELECT owner FROM packs WHERE url = $1", url).Scan(&owner)

	if err == pgx.ErrNoRows {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to fetch pack owner", zap.Error(err), zap.String("url", url))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	if owner != d.Auth.ID {
		return api.HttpResponse{
			Status: http.StatusForbidden,
			Json: types.ApiError{
				Reason: "Only the owner of this pack can delete it",
			},
		}
	}

	_, err = d.State.Pool.Exec(d.Context, "DELETE FROM packs WHERE url = $1", url)

	if err != nil {
		d.State.Logger.Error("Failed to delete pack", zap.Error(err), zap.String("url", url))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json: types.Done("Pack deleted successfully"),
	}
}
