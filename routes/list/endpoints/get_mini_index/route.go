package get_mini_index

import (
	"net/http"

	"magpie/api"
	"magpie/cache"
	"magpie/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var listedStates = []int{int(types.StateApproved), int(types.StateCertified)}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	cacheKey := cache.MiniIndexKey()

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	index := types.MiniIndex{Bots: []types.MiniIndexBot{}}

	err := pgxscan.Select(d.Context, d.State.Pool, &index.Bots, "SELECT bot_id, vanity, short FROM bots WHERE state = ANY($1) ORDER BY votes DESC", listedStates)

	if err != nil {
		d.State.Logger.Error("Failed to build mini index", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      index,
		CacheKey:  cacheKey,
		CacheTime: cache.IndexTTL,
	}
}
