package assets

import (
	"context"

	"magpie/state"
	"magpie/types"
)

// FillUsers resolves the canonical user record for each index row. Bots
// that somehow lack a users row are kept with a nil user rather than
// dropped.
func FillUsers(ctx context.Context, s *state.State, bots []types.IndexBot) error {
	for i := range bots {
		user, err := s.Checks.Store.User(ctx, bots[i].BotID)

		if err != nil {
			return err
		}

		bots[i].User = user
	}

	return nil
}
