package get_pack

import (
	"net/http"
	"strings"

	"magpie/api"
	"magpie/cache"
	"magpie/routes/packs/assets"
	"magpie/types"
	"magpie/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	packColsArr = utils.GetCols(types.BotPack{})
	packCols    = strings.Join(packColsArr, ",")
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return api.DefaultResponse(http.StatusBadRequest)
	}

	cacheKey := cache.DetailKey("pack", strings.ToLower(id))

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	var pack types.BotPack

	rows, err := d.State.Pool.Query(d.Context, "SELECT "+packCols+" FROM packs WHERE url = $1 OR name = $1", id)

	if err != nil {
		d.State.Logger.Error("Failed to query pack", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = pgxscan.ScanOne(&pack, rows)

	if pgxscan.NotFound(err) {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to scan pack", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = assets.ResolveBots(d.Context, d.State, &pack)

	if err != nil {
		d.State.Logger.Error("Failed to resolve pack bots", zap.Error(err), zap.String("url", pack.URL))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      pack,
		CacheKey:  cacheKey,
		CacheTime: cache.DetailTTL,
	}
}
