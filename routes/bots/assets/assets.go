// Shared helpers for the bot endpoints. Other route groups borrow
// CheckResponse so admission failures look the same everywhere.
package assets

import (
	"context"
	"net/http"
	"strings"

	"magpie/api"
	"magpie/constants"
	"magpie/state"
	"magpie/types"
	"magpie/utils"
	"magpie/validators"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// CheckResponse converts an admission failure into the wire envelope.
// A missing record is the only check failure that maps to 404.
func CheckResponse(cerr *validators.CheckError) api.HttpResponse {
	status := http.StatusBadRequest

	if cerr.Code == validators.CodeNotFound {
		status = http.StatusNotFound
	}

	ctx := cerr.Context

	if ctx == "" {
		ctx = string(cerr.Code)
	}

	return api.HttpResponse{
		Status: status,
		Json: types.ApiError{
			Reason:  cerr.Reason,
			Context: ctx,
		},
	}
}

// ResolveBot resolves a vanity or snowflake to a bot ID. An empty string
// means no such bot.
func ResolveBot(ctx context.Context, s *state.State, param string) (string, error) {
	var botID string

	err := s.Pool.QueryRow(ctx, "SELECT bot_id FROM bots WHERE "+constants.ResolveBotSQL, param).Scan(&botID)

	if err == pgx.ErrNoRows {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return botID, nil
}

// Owners fetches the owner list of a bot. Works on both a pool and an open
// transaction so ownership can be re-checked under the same tx as a write.
func Owners(ctx context.Context, q pgxscan.Querier, botID string) ([]types.Owner, error) {
	var owners []types.Owner

	err := pgxscan.Select(ctx, q, &owners, "SELECT owner_id, main FROM bot_owners WHERE bot_id = $1 ORDER BY main DESC, owner_id ASC", botID)

	if err != nil {
		return nil, err
	}

	return owners, nil
}

var createCols = []string{"bot_id", "client_id", "prefix", "vanity", "short", "long", "invite", "website", "donate", "github", "privacy_policy", "banner_card", "banner_page", "tags", "features", "state", "flags", "guild_count"}

var createSQL = "INSERT INTO bots (" + strings.Join(createCols, ", ") + ") VALUES (" + utils.InsertParams(len(createCols)) + ")"

// CreateBot inserts a freshly admitted bot with mainOwner as its main
// owner. Any extra owners on the candidate come in as regular owners. New
// bots always start out pending.
func CreateBot(ctx context.Context, tx pgx.Tx, c *types.Candidate, mainOwner string) error {
	_, err := tx.Exec(
		ctx,
		createSQL,
		c.ID,
		c.ClientID,
		c.Prefix,
		c.Vanity,
		c.Short,
		c.Long,
		c.Invite,
		c.Website,
		c.Donate,
		c.Github,
		c.PrivacyPolicy,
		c.BannerCard,
		c.BannerPage,
		c.Tags,
		c.Features,
		types.StatePending,
		0,
		c.GuildCount,
	)

	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, "INSERT INTO bot_owners (bot_id, owner_id, main) VALUES ($1, $2, true)", c.ID, mainOwner)

	if err != nil {
		return err
	}

	for _, o := range c.Owners {
		if o.ID == mainOwner {
			continue
		}

		_, err = tx.Exec(ctx, "INSERT INTO bot_owners (bot_id, owner_id, main) VALUES ($1, $2, false) ON CONFLICT (bot_id, owner_id) DO NOTHING", c.ID, o.ID)

		if err != nil {
			return err
		}
	}

	return nil
}
