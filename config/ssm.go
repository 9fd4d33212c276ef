package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// SSMParameterPathKey names the Parameter Store prefix merged over the environment.
const SSMParameterPathKey = "SSM_PARAMETER_PATH"

// ParameterLister is the part of the SSM client used to read parameters.
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewSSMClient builds a Parameter Store client from the default AWS credential chain.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// MergeSSM copies every parameter under prefix into cfg. The last path
// element becomes the key, so /portfolio/prod/SUPABASE_JWT_SECRET sets
// SUPABASE_JWT_SECRET. Parameter values win over the environment.
func MergeSSM(ctx context.Context, client ParameterLister, prefix string, cfg map[string]string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	merged := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return merged, fmt.Errorf("failed to read SSM parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(p.Name)))
			if name == "" || name == "/" || name == "." {
				continue
			}
			cfg[name] = aws.ToString(p.Value)
			merged++
		}
	}

	log.Info().Str("path", prefix).Int("parameters", merged).Msg("Merged SSM parameters into config")
	return merged, nil
}
