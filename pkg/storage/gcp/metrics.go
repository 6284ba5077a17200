// File: pkg/storage/gcp/metrics.go
package gcp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	monitoringpb "cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/iterator"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// GCS reports total_bytes roughly once a day, so a shorter window often comes back empty
const metricTimeWindow = 72 * time.Hour

const totalBytesMetric = "storage.googleapis.com/storage/v2/total_bytes"

// ErrMetricsNotFound indicates that the usage metrics could not be found within the queried time range
// This often happens for new buckets that haven't reported metrics yet
var ErrMetricsNotFound = errors.New("usage metrics not found in the monitoring window")

// Usage reports the bytes stored in the bucket according to Cloud Monitoring
func (g *GCPStorage) Usage(ctx context.Context) (int64, error) {
	g.logger.Debug("Fetching GCP bucket usage via Monitoring API", "bucket", g.bucketName)

	client, err := monitoring.NewMetricClient(ctx)
	if err != nil {
		return -1, fmt.Errorf("failed to create monitoring client: %w", err)
	}
	defer client.Close()

	it := client.ListTimeSeries(ctx, usageRequest(g.projectID, g.bucketName, time.Now()))

	// Every series is summed into one, so the first response is the only one
	series, err := it.Next()
	if err == iterator.Done {
		return -1, ErrMetricsNotFound
	}
	if err != nil {
		return -1, fmt.Errorf("error getting metric data for bucket %s: %w", g.bucketName, err)
	}

	points := series.GetPoints()
	if len(points) == 0 {
		return -1, ErrMetricsNotFound
	}
	return extractUsageValue(points[0].GetValue()), nil
}

func usageRequest(projectID, bucketName string, now time.Time) *monitoringpb.ListTimeSeriesRequest {
	return &monitoringpb.ListTimeSeriesRequest{
		Name:   fmt.Sprintf("projects/%s", projectID),
		Filter: fmt.Sprintf(`metric.type="%s" AND resource.labels.bucket_name="%s"`, totalBytesMetric, bucketName),
		Interval: &monitoringpb.TimeInterval{
			StartTime: timestamppb.New(now.Add(-metricTimeWindow)),
			EndTime:   timestamppb.New(now),
		},
		Aggregation: &monitoringpb.Aggregation{
			AlignmentPeriod:    durationpb.New(metricTimeWindow),
			PerSeriesAligner:   monitoringpb.Aggregation_ALIGN_MEAN,
			CrossSeriesReducer: monitoringpb.Aggregation_REDUCE_SUM,
			GroupByFields:      []string{"resource.labels.bucket_name"},
		},
		View: monitoringpb.ListTimeSeriesRequest_FULL,
	}
}

func extractUsageValue(pointValue *monitoringpb.TypedValue) int64 {
	switch v := pointValue.GetValue().(type) {
	case *monitoringpb.TypedValue_DoubleValue:
		return int64(math.Round(v.DoubleValue))
	case *monitoringpb.TypedValue_Int64Value:
		return v.Int64Value
	default:
		return 0
	}
}
