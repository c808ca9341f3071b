package model

// Scope carries the caller's identity through the request pipeline.
// UserID is the tracker account id used to substitute self-references;
// when empty, generated JQL falls back to currentUser().
type Scope struct {
	UserID string
}

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
