package validators

import (
	"context"
	"errors"
	"strings"

	"magpie/types"
	"magpie/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBStore is the production Store over the postgres pool
type DBStore struct {
	Pool *pgxpool.Pool
}

func NewDBStore(pool *pgxpool.Pool) *DBStore {
	return &DBStore{Pool: pool}
}

func (s *DBStore) Record(ctx context.Context, targetType, id string) (*Record, error) {
	var rec Record

	var err error

	switch targetType {
	case "bot":
		err = s.Pool.QueryRow(ctx, "SELECT bot_id, client_id, state, flags FROM bots WHERE bot_id = $1", id).Scan(&rec.ID, &rec.ClientID, &rec.State, &rec.Flags)
	case "server":
		err = s.Pool.QueryRow(ctx, "SELECT server_id, '', state, flags FROM servers WHERE server_id = $1", id).Scan(&rec.ID, &rec.ClientID, &rec.State, &rec.Flags)
	default:
		return nil, errors.New("unknown target type: " + targetType)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *DBStore) ResolveVanity(ctx context.Context, code string) (string, string, error) {
	var targetType, targetID string

	err := s.Pool.QueryRow(
		ctx,
		`SELECT 'bot', bot_id FROM bots WHERE lower(vanity) = lower($1)
		UNION ALL
		SELECT 'server', server_id FROM servers WHERE lower(vanity) = lower($1)`,
		code,
	).Scan(&targetType, &targetID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", nil
	}

	if err != nil {
		return "", "", err
	}

	return targetType, targetID, nil
}

func (s *DBStore) User(ctx context.Context, id string) (*types.PlatformUser, error) {
	var user types.PlatformUser

	err := s.Pool.QueryRow(ctx, "SELECT user_id, username, avatar, bot FROM users WHERE user_id = $1", id).Scan(&user.ID, &user.Username, &user.Avatar, &user.Bot)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *DBStore) Tags(ctx context.Context) ([]types.Tag, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+tagCols+" FROM tags ORDER BY id")

	if err != nil {
		return nil, err
	}

	var tags []types.Tag

	err = pgxscan.ScanAll(&tags, rows)

	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (s *DBStore) Features(ctx context.Context) ([]types.Feature, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+featureCols+" FROM features ORDER BY id")

	if err != nil {
		return nil, err
	}

	var features []types.Feature

	err = pgxscan.ScanAll(&features, rows)

	if err != nil {
		return nil, err
	}

	return features, nil
}

var (
	tagCols     = strings.Join(utils.GetCols(types.Tag{}), ",")
	featureCols = strings.Join(utils.GetCols(types.Feature{}), ",")
)
