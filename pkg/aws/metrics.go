package aws

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CloudWatchAPI is the subset of the CloudWatch client used here
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsClient wraps AWS CloudWatch Metrics operations
type MetricsClient struct {
	client    CloudWatchAPI
	namespace string
}

// NewMetricsClient creates a new CloudWatch Metrics client
func NewMetricsClient(ctx context.Context) (*MetricsClient, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	namespace := os.Getenv("CLOUDWATCH_NAMESPACE")
	if namespace == "" {
		namespace = "Marketplace"
	}

	return &MetricsClient{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}, nil
}

// PutMetric sends a single metric data point to CloudWatch
func (m *MetricsClient) PutMetric(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric: %w", err)
	}
	return nil
}

// RecordCount increments a counter metric
func (m *MetricsClient) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records a latency/duration metric in milliseconds
func (m *MetricsClient) RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

// ObserveCall records one API call: its count, latency, and an error count
// for transport failures or non-success statuses. It satisfies
// clients.CallObserver. Metrics are shipped in the background.
func (m *MetricsClient) ObserveCall(endpoint string, status int, duration time.Duration, err error) {
	dims := map[string]string{
		"Endpoint": endpoint,
		"Status":   statusCodeToRange(status),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = m.RecordCount(ctx, MetricAPIRequests, dims)
		_ = m.RecordLatency(ctx, MetricAPILatency, duration, dims)
		if err != nil || status >= 400 {
			_ = m.RecordCount(ctx, MetricAPIErrors, dims)
		}
	}()
}

// ObserveRequest records one storefront request. It satisfies
// middleware.RequestObserver.
func (m *MetricsClient) ObserveRequest(method, route string, status int, duration time.Duration) {
	dims := map[string]string{
		"Method": method,
		"Route":  route,
		"Status": statusCodeToRange(status),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = m.RecordCount(ctx, MetricHTTPRequests, dims)
		_ = m.RecordLatency(ctx, MetricHTTPLatency, duration, dims)
		if status >= 500 {
			_ = m.RecordCount(ctx, MetricHTTP5xx, dims)
		} else if status >= 400 {
			_ = m.RecordCount(ctx, MetricHTTP4xx, dims)
		}
	}()
}

func statusCodeToRange(status int) string {
	switch {
	case status == 0:
		return "none"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Metric names
const (
	MetricAPIRequests = "APIRequests"
	MetricAPIErrors   = "APIErrors"
	MetricAPILatency  = "APILatency"

	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xx"
	MetricHTTP5xx      = "HTTP5xx"
)
