package import_bot

import (
	"errors"
	"net/http"
	"strings"

	"magpie/api"
	"magpie/importers"
	"magpie/routes/bots/assets"
	"magpie/types"
	"magpie/validators"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func sourceList() string {
	var names []string

	for _, s := range importers.Sources() {
		names = append(names, string(s))
	}

	return strings.Join(names, ", ")
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	src := r.URL.Query().Get("src")

	if src == "" {
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason: "A src query parameter is required. Supported sources: " + sourceList(),
			},
		}
	}

	var doc map[string]any

	hresp, ok := api.MarshalReq(d, r, &doc)

	if !ok {
		return hresp
	}

	candidate, err := importers.Adapt(importers.Source(src), doc, chi.URLParam(r, "bot_id"), d.Auth.ID, d.State.Config.Meta.FallbackTag)

	if err != nil {
		switch {
		case errors.Is(err, importers.ErrUnknownSource):
			return api.HttpResponse{
				Status: http.StatusBadRequest,
				Json: types.ApiError{
					Reason: "Unknown import source " + src + ". Supported sources: " + sourceList(),
				},
			}
		case errors.Is(err, importers.ErrNotAnOwner):
			return api.HttpResponse{
				Status: http.StatusForbidden,
				Json: types.ApiError{
					Reason: "You are not listed as an owner of this bot on " + src,
				},
			}
		default:
			return api.HttpResponse{
				Status: http.StatusBadRequest,
				Json: types.ApiError{
					Reason: "Could not read the export document: " + err.Error(),
				},
			}
		}
	}

	// Imported bots go through the exact same admission chain as manual
	// submissions
	checked, cerr := validators.CheckBot(d.Context, d.State.Checks, validators.ModeAdd, *candidate)

	if cerr != nil {
		return assets.CheckResponse(cerr)
	}

	tx, err := d.State.Pool.Begin(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to begin transaction", zap.Error(err))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	defer tx.Rollback(d.Context)

	err = assets.CreateBot(d.Context, tx, checked, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to insert imported bot", zap.Error(err), zap.String("botID", checked.ID), zap.String("src", src))
		return api.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Reason:  "Failed to save this bot: " + err.Error(),
				Context: "store_error",
			},
		}
	}

	err = tx.Commit(d.Context)

	if err != nil {
		d.State.Logger.Error("Failed to commit bot import", zap.Error(err), zap.String("botID", checked.ID))
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	err = d.State.Relay.BotAdded(checked, d.Auth.ID)

	if err != nil {
		d.State.Logger.Error("Failed to relay bot import", zap.Error(err), zap.String("botID", checked.ID))
		return api.HttpResponse{
			Json: types.ApiError{
				Done:    true,
				Reason:  "Bot imported from " + src + ", but we couldn't notify staff: " + err.Error(),
				Context: "relay_failed",
			},
		}
	}

	return api.HttpResponse{
		Json: types.Done("Bot imported from " + src + " and added to the queue"),
	}
}
