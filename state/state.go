// Package state owns the process-wide application state. It is constructed
// exactly once in main and passed by handle into every request handler;
// there are no package-level mutable globals.
package state

import (
	"context"
	"os"

	"magpie/config"
	"magpie/notifications"
	"magpie/ratelimit"
	"magpie/validators"
	"magpie/verify"

	"github.com/bwmarrin/discordgo"
	"github.com/go-playground/validator/v10"
	nonstdvalidators "github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type State struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Discord   *discordgo.Session
	Logger    *zap.SugaredLogger
	Validator *validator.Validate
	Config    *config.Config
	Context   context.Context

	// Checks holds the admission-chain dependencies: the pgx store plus
	// the live external verifiers. Tests build their own Deps with fakes.
	Checks  validators.Deps
	Limiter *ratelimit.Limiter
	Relay   *notifications.Relay
}

// New loads config.yaml, validates it and opens every backing connection.
// Any failure here is fatal; the process has nothing useful to do without
// its stores.
func New(ctx context.Context) *State {
	s := &State{
		Context:   ctx,
		Validator: validator.New(),
	}

	s.Validator.RegisterValidation("notblank", nonstdvalidators.NotBlank)
	s.Validator.RegisterValidation("nospaces", snippets.ValidatorNoSpaces)
	s.Validator.RegisterValidation("https", snippets.ValidatorIsHttps)

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &s.Config)

	if err != nil {
		panic(err)
	}

	err = s.Validator.Struct(s.Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	s.Logger = snippets.CreateZap().Sugar()

	s.Pool, err = pgxpool.New(ctx, s.Config.Meta.PostgresURL)

	if err != nil {
		panic(err)
	}

	rOptions, err := redis.ParseURL(s.Config.Meta.RedisURL)

	if err != nil {
		panic(err)
	}

	s.Redis = redis.NewClient(rOptions)

	s.Discord, err = discordgo.New("Bot " + s.Config.DiscordAuth.Token)

	if err != nil {
		panic(err)
	}

	s.Discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	s.Checks = validators.Deps{
		Store:  validators.NewDBStore(s.Pool),
		Apps:   verify.NewApplicationLookup(s.Config.JAPI.Key),
		Banner: verify.NewImageProbe(),
	}

	s.Limiter = ratelimit.New(s.Redis)
	s.Relay = notifications.New(s.Discord, s.Config)

	go func() {
		err := s.Discord.Open()
		if err != nil {
			panic(err)
		}

		err = s.Discord.UpdateWatchStatus(0, s.Config.Sites.Frontend)

		if err != nil {
			s.Logger.Error("Failed to update watch status", zap.Error(err))
		}
	}()

	return s
}
