package config

const (
	// DefaultMaxIterations bounds model/tool round-trips per chat request.
	// The cap guarantees termination when a model keeps issuing tool calls;
	// the "right" value is a product decision, hence the env override.
	DefaultMaxIterations = 10

	// DefaultHistoryTurns is how many recent conversation turns the prompt
	// builder includes when constructing a request.
	DefaultHistoryTurns = 5

	// DefaultMaxTokens is the output token ceiling per model call.
	DefaultMaxTokens = 2000

	// MaxNoteTitleLength is the maximum length for note titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxNoteTitleLength = 255

	// MaxMessageLength bounds a single inbound chat message.
	MaxMessageLength = 10000
)
