// Package metrics writes headcount metrics to CloudWatch.
package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
)

const (
	GuestsSubmitted = "GuestsSubmitted"
	GuestsAttending = "GuestsAttending"
	SongRequests    = "SongRequests"
)

// Emitter puts count metrics into one namespace.
type Emitter struct {
	client    aws.CloudWatchAPI
	namespace string
	nowFunc   func() time.Time
}

// NewEmitter returns an Emitter for namespace.
func NewEmitter(client aws.CloudWatchAPI, namespace string) *Emitter {
	return &Emitter{
		client:    client,
		namespace: namespace,
		nowFunc:   time.Now,
	}
}

// PutCounts sends one datum per non-zero count in a single PutMetricData call.
func (e *Emitter) PutCounts(ctx context.Context, counts map[string]float64) error {
	names := make([]string, 0, len(counts))
	for name, v := range counts {
		if v != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	now := e.nowFunc()
	data := make([]types.MetricDatum, 0, len(names))
	for _, name := range names {
		data = append(data, types.MetricDatum{
			MetricName: awsString(name),
			Value:      awsFloat(counts[name]),
			Unit:       types.StandardUnitCount,
			Timestamp:  &now,
		})
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &e.namespace,
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsString(s string) *string  { return &s }
func awsFloat(f float64) *float64 { return &f }
