package get_list_index

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
	indexPackCols   = strings.Join(utils.GetCols(types.IndexBotPack{}), ",")

	// Approved and certified are the only states shown publicly
	listedStates = []int{int(types.StateApproved), int(types.StateCertified)}
)

func botIndex(d api.RouteData) (*types.ListIndex, error) {
	index := types.ListIndex{}

	for _, q := range []struct {
		dst  *[]types.IndexBot
		sql  string
		args []any
	}{
		{&index.Certified, "SELECT " + indexBotCols + " FROM bots WHERE state = $1 ORDER BY votes DESC LIMIT 9", []any{types.StateCertified}},
		{&index.TopVoted, "SELECT " + indexBotCols + " FROM bots WHERE state = ANY($1) ORDER BY votes DESC LIMIT 12", []any{listedStates}},
		{&index.RecentlyAdded, "SELECT " + indexBotCols + " FROM bots WHERE state = $1 ORDER BY created_at DESC LIMIT 12", []any{types.StateApproved}},
	} {
		err := pgxscan.Select(d.Context, d.State.Pool, q.dst, q.sql, q.args...)

		if err != nil {
			return nil, err
		}

		err = assets.FillUsers(d.Context, d.State, *q.dst)

		if err != nil {
			return nil, err
		}
	}

	err := pgxscan.Select(d.Context, d.State.Pool, &index.Packs, "SELECT "+indexPackCols+" FROM packs ORDER BY created_at DESC LIMIT 12")

	if err != nil {
		return nil, err
	}

	return &index, nil
}

func serverIndex(d api.RouteData) (*types.ServerIndex, error) {
	index := types.ServerIndex{}

	for _, q := range []struct {
		dst  *[]types.IndexServer
		sql  string
		args []any
	}{
		{&index.TopVoted, "SELECT " + indexServerCols + " FROM servers WHERE state = ANY($1) ORDER BY votes DESC LIMIT 12", []any{listedStates}},
		{&index.RecentlyAdded, "SELECT " + indexServerCols + " FROM servers WHERE state = $1 ORDER BY created_at DESC LIMIT 12", []any{types.StateApproved}},
	} {
		err := pgxscan.Select(d.Context, d.State.Pool, q.dst, q.sql, q.args...)

		if err != nil {
			return nil, err
		}
	}

	return &index, nil
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	targetType := r.URL.Query().Get("target_type")

	if targetType == "" {
		targetType = api.TargetTypeBot
	}

	if targetType != api.TargetTypeBot && targetType != api.TargetTypeServer {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "target_type must be bot or server",
			},
		}
	}

	cacheKey := cache.IndexKey(targetType)

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	var index any
	var err error

	if targetType == api.TargetTypeBot {
		index, err = botIndex(d)
	} else {
		index, err = serverIndex(d)
	}

	if err != nil {
		d.State.Logger.Error("Failed to build index", zap.Error(err), zap.String("targetType", targetType))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      index,
		CacheKey:  cacheKey,
		CacheTime: cache.IndexTTL,
	}
}
