package limiter

// Limiter marks a provider wrapped with a rate limit.
type Limiter interface {
	limiterSetup()
}
