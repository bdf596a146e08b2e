package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

const defaultRegion = "us-east-1"

// LoadAWSConfig loads the shared AWS configuration. AWS_CLOUDWATCH_ENDPOINT
// (or AWS_ENDPOINT) points every client at another endpoint, e.g. LocalStack.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	if endpoint := cloudWatchEndpoint(); endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(endpoint)
	}
	return cfg, nil
}

func cloudWatchEndpoint() string {
	if v := os.Getenv("AWS_CLOUDWATCH_ENDPOINT"); v != "" {
		return v
	}
	return os.Getenv("AWS_ENDPOINT")
}
