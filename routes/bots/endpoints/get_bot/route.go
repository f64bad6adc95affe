package get_bot

import (
	"net/http"
	"strings"

	"magpie/api"
	"magpie/cache"
	"magpie/constants"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	botColsArr = utils.GetCols(types.Bot{})
	botCols    = strings.Join(botColsArr, ",")
)

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return api.DefaultResponse(http.StatusBadRequest)
	}

	cacheKey := cache.DetailKey(api.TargetTypeBot, strings.ToLower(id))

	if snapshot, ok := cache.Get(d.Context, d.State.Redis, cacheKey); ok {
		return api.HttpResponse{
			Data:    snapshot,
			Headers: map[string]string{"X-Cached": "true"},
		}
	}

	var bot types.Bot

	rows, err := d.State.Pool.Query(d.Context, "SELECT "+botCols+" FROM bots WHERE "+constants.ResolveBotSQL, id)

	if err != nil {
		d.State.Logger.Error("Failed to query bot", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = pgxscan.ScanOne(&bot, rows)

	if pgxscan.NotFound(err) {
		return api.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		d.State.Logger.Error("Failed to scan bot", zap.Error(err), zap.String("id", id))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	bot.User, err = d.State.Checks.Store.User(d.Context, bot.BotID)

	if err != nil {
		d.State.Logger.Error("Failed to resolve bot user", zap.Error(err), zap.String("botID", bot.BotID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	bot.Owners, err = assets.Owners(d.Context, d.State.Pool, bot.BotID)

	if err != nil {
		d.State.Logger.Error("Failed to resolve bot owners", zap.Error(err), zap.String("botID", bot.BotID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	return api.HttpResponse{
		Json:      bot,
		CacheKey:  cacheKey,
		CacheTime: cache.DetailTTL,
	}
}
