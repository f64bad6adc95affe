package types

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Server represents a listed guild. Structurally it mirrors Bot for
// validation purposes; member_count takes the place of guild_count.
type Server struct {
	ServerID    string             `db:"server_id" json:"server_id"`
	User        *PlatformUser      `db:"-" json:"user"`
	Vanity      string             `db:"vanity" json:"vanity"`
	Short       string             `db:"short" json:"short"`
	Long        string             `db:"long" json:"long"`
	Invite      pgtype.Text        `db:"invite" json:"invite"`
	Website     pgtype.Text        `db:"website" json:"website"`
	BannerCard  pgtype.Text        `db:"banner_card" json:"banner_card"`
	BannerPage  pgtype.Text        `db:"banner_page" json:"banner_page"`
	Tags        []string           `db:"tags" json:"tags"`
	State       EntityState        `db:"state" json:"state"`
	Flags       EntityFlags        `db:"flags" json:"flags"`
	MemberCount int                `db:"member_count" json:"member_count"`
	Votes       int                `db:"votes" json:"votes"`
	CreatedAt   pgtype.Timestamptz `db:"created_at" json:"created_at"`
}

// IndexServer is the trimmed-down server row used in the index view
type IndexServer struct {
	ServerID    string      `db:"server_id" json:"server_id"`
	Short       string      `db:"short" json:"short"`
	Vanity      string      `db:"vanity" json:"vanity"`
	State       EntityState `db:"state" json:"state"`
	Votes       int         `db:"votes" json:"votes"`
	MemberCount int         `db:"member_count" json:"member_count"`
	Tags        []string    `db:"tags" json:"tags"`
	BannerCard  pgtype.Text `db:"banner_card" json:"banner_card"`
}
