package metrics

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/bmwcca/bmwcca-sso/internal/config"
)

// CloudWatchAPI defines the CloudWatch client interface used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Emitter sends membership check metrics to CloudWatch.
type Emitter struct {
	client    CloudWatchAPI
	namespace string
}

// NewEmitter creates a CloudWatch metrics emitter.
func NewEmitter(cfg aws.Config, namespace string) *Emitter {
	return &Emitter{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}
}

// NewEmitterFromConfig loads the default AWS config for the metrics region.
func NewEmitterFromConfig(ctx context.Context, cfg config.MetricsConfig) (*Emitter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewEmitter(awsCfg, cfg.Namespace), nil
}

// EmitMembershipCheck publishes the outcome of a single membership check.
func (e *Emitter) EmitMembershipCheck(ctx context.Context, chapterID string, active bool) error {
	activeCount, inactiveCount := 0, 1
	if active {
		activeCount, inactiveCount = 1, 0
	}

	dimension := types.Dimension{Name: aws.String("ChapterId"), Value: aws.String(chapterID)}
	metrics := []types.MetricDatum{
		metricDatum("MembershipChecks", 1, dimension),
		metricDatum("ActiveMembers", activeCount, dimension),
		metricDatum("InactiveMembers", inactiveCount, dimension),
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(e.namespace),
		MetricData: metrics,
	})
	return err
}

func metricDatum(name string, value int, dimensions ...types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Unit:       types.StandardUnitCount,
		Value:      aws.Float64(float64(value)),
		Dimensions: dimensions,
	}
}
