package config

// Config is loaded from config.yaml at startup and validated before any
// component is constructed
type Config struct {
	DiscordAuth DiscordAuth `yaml:"discord_auth" validate:"required"`
	Sites       Sites       `yaml:"sites" validate:"required"`
	Channels    Channels    `yaml:"channels" validate:"required"`
	Servers     Servers     `yaml:"servers" validate:"required"`
	JAPI        JAPI        `yaml:"japi" validate:"required"`
	Meta        Meta        `yaml:"meta" validate:"required"`
}

type DiscordAuth struct {
	Token    string `yaml:"token" comment:"Discord bot token" validate:"required"`
	ClientID string `yaml:"client_id" comment:"Discord Client ID" validate:"required"`
}

type Sites struct {
	Frontend string `yaml:"frontend" default:"https://magpie.gg" comment:"Frontend URL" validate:"required"`
	API      string `yaml:"api" default:"https://api.magpie.gg" comment:"API URL" validate:"required"`
}

type Channels struct {
	BotLogs  string `yaml:"bot_logs" comment:"Queue log channel, new/edited/deleted bots land here" validate:"required"`
	Appeals  string `yaml:"appeals" comment:"Appeals and certification requests channel, staff only" validate:"required"`
	Reports  string `yaml:"reports" comment:"Reports channel, staff only" validate:"required"`
	VoteLogs string `yaml:"vote_logs" comment:"Vote log channel" validate:"required"`
}

type Servers struct {
	Main string `yaml:"main" comment:"Main (staff) server ID" validate:"required"`
}

type JAPI struct {
	Key string `yaml:"key" comment:"JAPI Key. Get it from https://japi.rest" validate:"required"`
}

type Meta struct {
	PostgresURL    string `yaml:"postgres_url" default:"postgresql:///magpie" comment:"Postgres URL" validate:"required"`
	RedisURL       string `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	Port           string `yaml:"port" default:":8081" comment:"Port to run the server on" validate:"required"`
	SentryDSN      string `yaml:"sentry_dsn" default:"" comment:"Sentry DSN, leave empty to disable"`
	UrgentMentions string `yaml:"urgent_mentions" comment:"Role mention prepended to urgent staff relays" validate:"required"`
	FallbackTag    string `yaml:"fallback_tag" default:"utility" comment:"Tag assigned to imported bots with no mappable tags" validate:"required"`
}
