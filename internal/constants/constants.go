package constants

// Centralized constants for env keys, routes and the OpenAI integration.
const (
	// Environment variable keys
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvConfigPath   = "WEREWOLF_CONFIG"
	EnvDBPath       = "WEREWOLF_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoint and typical parameters
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"
	OpenAIChatModel           = "gpt-4o-mini"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteGames          = "/games"
	RouteGameByID       = "/games/:gameID"
	RouteGameEvents     = "/games/:gameID/events"
	RouteGameNight      = "/games/:gameID/night-action"
	RouteGameDiscussion = "/games/:gameID/discussion"
	RouteGameVote       = "/games/:gameID/vote"
	RouteGameRestart    = "/games/:gameID/restart"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidGameID       = "Invalid game ID"
	ErrGameNotFound        = "Game not found"
	ErrFailedCreateGame    = "Failed to create game"
	ErrFailedUpdateGame    = "Failed to update game"
	ErrFailedFetchEvents   = "Failed to fetch events"
	ErrPlayerNameExceeds   = "Player name exceeds 32 characters"
	ErrUnknownRole         = "Unknown role"
	ErrWrongPhase          = "Action not allowed in the current phase"
	ErrFailedResolveNight  = "Failed to resolve the night"
	ErrFailedRunDiscussion = "Failed to run the discussion"
	ErrFailedResolveVote   = "Failed to resolve the vote"
	ErrFailedRestartGame   = "Failed to restart game"
)

// Logging field names
const (
	LogFieldGameID     = "game_id"
	LogFieldPhase      = "phase"
	LogFieldDay        = "day"
	LogFieldGeneration = "generation"
	LogFieldSource     = "source"
	LogFieldKey        = "key"
	LogFieldAddr       = "addr"
)
