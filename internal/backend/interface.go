package backend

import (
	"context"
)

// SecretFetcher retrieves a secret value from AWS Secrets Manager by ARN
// or by name.
type SecretFetcher interface {
	FetchSecret(ctx context.Context, id string) (string, error)
}

// ParameterFetcher retrieves a parameter value from SSM Parameter Store
// by ARN or by name.
type ParameterFetcher interface {
	FetchParameter(ctx context.Context, id string, decrypt bool) (string, error)
}

// Pair bundles the two store clients bound to a single region.
// Safe for shared use across concurrent fetches.
type Pair struct {
	Secrets    SecretFetcher
	Parameters ParameterFetcher
}
