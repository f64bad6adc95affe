package types

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Bot represents a listed bot as stored
type Bot struct {
	BotID         string             `db:"bot_id" json:"bot_id"`
	ClientID      string             `db:"client_id" json:"client_id"`
	User          *PlatformUser      `db:"-" json:"user"`   // Must be resolved internally
	Owners        []Owner            `db:"-" json:"owners"` // Must be resolved internally
	Prefix        pgtype.Text        `db:"prefix" json:"prefix"`
	Vanity        string             `db:"vanity" json:"vanity"`
	Short         string             `db:"short" json:"short"`
	Long          string             `db:"long" json:"long"`
	Invite        pgtype.Text        `db:"invite" json:"invite"`
	Website       pgtype.Text        `db:"website" json:"website"`
	Donate        pgtype.Text        `db:"donate" json:"donate"`
	Github        pgtype.Text        `db:"github" json:"github"`
	PrivacyPolicy pgtype.Text        `db:"privacy_policy" json:"privacy_policy"`
	BannerCard    pgtype.Text        `db:"banner_card" json:"banner_card"`
	BannerPage    pgtype.Text        `db:"banner_page" json:"banner_page"`
	Tags          []string           `db:"tags" json:"tags"`
	Features      []string           `db:"features" json:"features"`
	State         EntityState        `db:"state" json:"state"`
	Flags         EntityFlags        `db:"flags" json:"flags"`
	GuildCount    int                `db:"guild_count" json:"guild_count"`
	Votes         int                `db:"votes" json:"votes"`
	CreatedAt     pgtype.Timestamptz `db:"created_at" json:"created_at"`
}

// IndexBot is the trimmed-down bot row used in the index and search views
type IndexBot struct {
	BotID      string        `db:"bot_id" json:"bot_id"`
	User       *PlatformUser `db:"-" json:"user"`
	Short      string        `db:"short" json:"short"`
	Vanity     string        `db:"vanity" json:"vanity"`
	State      EntityState   `db:"state" json:"state"`
	Votes      int           `db:"votes" json:"votes"`
	GuildCount int           `db:"guild_count" json:"guild_count"`
	Tags       []string      `db:"tags" json:"tags"`
	BannerCard pgtype.Text   `db:"banner_card" json:"banner_card"`
}

// MiniIndexBot is the minimal row used by the mini index (autocomplete etc)
type MiniIndexBot struct {
	BotID  string `db:"bot_id" json:"bot_id"`
	Vanity string `db:"vanity" json:"vanity"`
	Short  string `db:"short" json:"short"`
}
