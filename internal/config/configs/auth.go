package configs

// Auth configures verification of client bearer tokens.
type Auth struct {
	// Secret is the HS256 signing key shared with the token issuer.
	Secret string `env:"SECRET,required"`
}
