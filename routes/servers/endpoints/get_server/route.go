package get_server

import (
	"net/http"
	"strings"

	"magpie/api"
	"magpie/cache"
	"magpie/constants"
	"magpie/types"
	"magpie/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	serverColsArr = utils.GetCols(types.Server{})
	serverCols    = strings.Join(serverColsArr, ",")
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return api.DefaultResponse(http.StatusBadRequest)
	}

	cacheKey := cache.DetailKey(api.TargetTypeServer, strings.ToLower(id))

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	var server types.Server

	rows, err := d.State.Pool.Query(d.Context, "SELECT "+serverCols+" FROM servers WHERE "+constants.ResolveServerSQL, id)

	if err != nil {
		d.State.Logger.Error("Failed to query server", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = pgxscan.ScanOne(&server, rows)

	if pgxscan.NotFound(err) {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to scan server", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      server,
		CacheKey:  cacheKey,
		CacheTime: cache.DetailTTL,
	}
}
