package constants

const (
	NotFound         = "{\"done\":false,\"reason\":\"Slow down, bucko! We couldn't find this resource *anywhere*!\"}"
	NotFoundPage     = "{\"done\":false,\"reason\":\"Slow down, bucko! You got the path wrong or something but this endpoint doesn't exist!\"}"
	BadRequest       = "{\"done\":false,\"reason\":\"Slow down, bucko! You're doing something illegal!!!\"}"
	Forbidden        = "{\"done\":false,\"reason\":\"Slow down, bucko! You're not allowed to do this!\"}"
	InternalError    = "{\"done\":false,\"reason\":\"Slow down, bucko! Something went wrong on our end!\"}"
	MethodNotAllowed = "{\"done\":false,\"reason\":\"Slow down, bucko! That method is not allowed for this endpoint!!!\"}"
	Success          = "{\"done\":true,\"reason\":\"Success!\"}"
	BackTick         = "`"
	DoubleBackTick   = "``"

	// Resolves a bot by either vanity or snowflake in one WHERE clause
	ResolveBotSQL = "(lower(vanity) = lower($1) OR bot_id = $1)"

	// Same, for servers
	ResolveServerSQL = "(lower(vanity) = lower($1) OR server_id = $1)"
)
