package backend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI abstracts the Secrets Manager operations used here,
// for testing.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerFetcher implements SecretFetcher over the AWS API.
type SecretsManagerFetcher struct {
	client SecretsManagerAPI
}

// NewSecretsManagerFetcher creates a fetcher with the given client.
func NewSecretsManagerFetcher(client SecretsManagerAPI) *SecretsManagerFetcher {
	return &SecretsManagerFetcher{client: client}
}

// FetchSecret retrieves a secret string by ARN or name. A secret without
// a string payload (binary-only) reads as the empty string.
func (f *SecretsManagerFetcher) FetchSecret(ctx context.Context, id string) (string, error) {
	out, err := f.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", newError("secretsmanager", id, err)
	}
	return aws.ToString(out.SecretString), nil
}
