package types

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// BotPack represents a bot pack as stored
type BotPack struct {
	Owner        string          `db:"owner" json:"owner_id"`
	URL          string          `db:"url" json:"url"`
	Name         string          `db:"name" json:"name"`
	Short        string          `db:"short" json:"short"`
	Bots         []string        `db:"bots" json:"bot_ids"`
	Icon         pgtype.Text     `db:"icon" json:"icon"`
	Banner       pgtype.Text     `db:"banner" json:"banner"`
	Votes        int             `db:"votes" json:"votes"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ResolvedBots []MiniIndexBot `db:"-" json:"bots"`
}

// PackCandidate is a caller-submitted pack payload before admission
type PackCandidate struct {
	Name   string   `json:"name" validate:"required,min=3,max=20" msg:"Name must be between 3 and 20 characters"`
	URL    string   `json:"url" validate:"required,min=3,max=20,nospaces,notblank" msg:"URL must be between 3 and 20 characters without spaces"`
	Short  string   `json:"short"`
	Bots   []string `json:"bots" validate:"required,dive,numeric" msg:"Each bot must be a numeric snowflake"`
	Icon   string   `json:"icon"`
	Banner string   `json:"banner"`
}
