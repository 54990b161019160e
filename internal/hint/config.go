package hint

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults tuned for a two-sentence nudge.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.4,
	}
}
