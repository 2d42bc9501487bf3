package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig loads the default AWS config. When AWS_ENDPOINT is set every
// client built from the returned config targets that URL (LocalStack).
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	applyEndpoint(&cfg, os.Getenv("AWS_ENDPOINT"))
	return cfg, nil
}

func applyEndpoint(cfg *sdkaws.Config, endpoint string) {
	if endpoint == "" {
		return
	}
	cfg.BaseEndpoint = sdkaws.String(endpoint)
}
