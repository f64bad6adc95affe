package assets

import (
	"context"

	"magpie/state"
	"magpie/types"

	"github.com/georgysavva/scany/v2/pgxscan"
)

// ResolveBots fills in the mini index rows for a pack's bot list. Unknown
// bot ids are simply absent from the result.
func ResolveBots(ctx context.Context, s *state.State, pack *types.BotPack) error {
	pack.ResolvedBots = []types.MiniIndexBot{}

	return pgxscan.Select(ctx, s.Pool, &pack.ResolvedBots, "SELECT bot_id, vanity, short FROM bots WHERE bot_id = ANY($1)", pack.Bots)
}
