package search_list

import (
	"net/http"
	"strings"

	"magpie/api"
	"magpie/cache"
	"magpie/routes/list/assets"
	"magpie/types"
	"magpie/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var (
	indexBotCols    = strings.Join(utils.GetCols(types.IndexBot{}), ",")
	indexServerCols = strings.Join(utils.GetCols(types.IndexServer{}), ",")

	listedStates = []int{int(types.StateApproved), int(types.StateCertified)}
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	query := cache.NormalizeQuery(r.URL.Query().Get("q"))

	if cache.QueryTooShort(query) {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "Search queries must be at least 2 characters long",
			},
		}
	}

	// Two different raw queries that normalize the same way share one
	// cache entry
	cacheKey := cache.SearchKey(query)

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	resp := types.SearchResponse{
		Query:   query,
		Bots:    []types.IndexBot{},
		Servers: []types.IndexServer{},
	}

	err := pgxscan.Select(
		d.Context,
		d.State.Pool,
		&resp.Bots,
		"SELECT "+indexBotCols+" FROM bots WHERE state = ANY($1) AND (vanity ILIKE '%'||$2||'%' OR short ILIKE '%'||$2||'%' OR long ILIKE '%'||$2||'%') ORDER BY votes DESC LIMIT 12",
		listedStates,
		query,
	)

	if err != nil {
		d.State.Logger.Error("Failed to search bots", zap.Error(err), zap.String("query", query))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = assets.FillUsers(d.Context, d.State, resp.Bots)

	if err != nil {
		d.State.Logger.Error("Failed to resolve search users", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = pgxscan.Select(
		d.Context,
		d.State.Pool,
		&resp.Servers,
		"SELECT "+indexServerCols+" FROM servers WHERE state = ANY($1) AND (vanity ILIKE '%'||$2||'%' OR short ILIKE '%'||$2||'%' OR long ILIKE '%'||$2||'%') ORDER BY votes DESC LIMIT 12",
		listedStates,
		query,
	)

	if err != nil {
		d.State.Logger.Error("Failed to search servers", zap.Error(err), zap.String("query", query))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      resp,
		CacheKey:  cacheKey,
		CacheTime: cache.SearchTTL,
	}
}
