package backend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMAPI abstracts the SSM operations used here, for testing.
type SSMAPI interface {
	GetParameter(ctx context.Context, input *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStoreFetcher implements ParameterFetcher over the AWS API.
type ParameterStoreFetcher struct {
	client SSMAPI
}

// NewParameterStoreFetcher creates a fetcher with the given SSM client.
func NewParameterStoreFetcher(client SSMAPI) *ParameterStoreFetcher {
	return &ParameterStoreFetcher{client: client}
}

// FetchParameter retrieves a parameter value by ARN or name.
func (f *ParameterStoreFetcher) FetchParameter(ctx context.Context, id string, decrypt bool) (string, error) {
	out, err := f.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(id),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", newError("ssm", id, err)
	}
	if out.Parameter == nil {
		return "", nil
	}
	return aws.ToString(out.Parameter.Value), nil
}
