package pipeline

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/store"
)

// AWSSinks builds the DynamoDB and S3 sinks from the default credential
// chain. Empty table or bucket disables that sink; with both empty no AWS
// config is loaded.
func AWSSinks(ctx context.Context, table, bucket, prefix string) (Sinks, error) {
	if table == "" && bucket == "" {
		return Sinks{}, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return Sinks{}, errors.Wrap(err, "load aws config")
	}
	var s Sinks
	if table != "" {
		s.DynamoDB = dynamodb.NewFromConfig(cfg)
		s.Table = table
	}
	if bucket != "" {
		s.Uploader = &store.Uploader{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix}
	}
	return s, nil
}
