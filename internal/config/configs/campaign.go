package configs

// Campaign holds dispatch settings for marketing campaigns.
type Campaign struct {
	// DailyLimit caps the number of template messages a sender may
	// dispatch per UTC day.
	DailyLimit int `env:"DAILY_LIMIT" envDefault:"100"`
	// DefaultPrefix is the country calling code assumed for bare local
	// numbers.
	DefaultPrefix string `env:"DEFAULT_PREFIX" envDefault:"+34"`
	// BatchSize is the number of recipients dispatched concurrently per
	// batch.
	BatchSize int `env:"BATCH_SIZE" envDefault:"10"`
}
