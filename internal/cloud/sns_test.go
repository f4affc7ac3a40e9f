package cloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSendAnomalyAlert(t *testing.T) {
	pub := &fakePublisher{}
	c := NewSNSClientWith(pub, "arn:aws:sns:us-east-1:123:alerts")

	a := domain.Anomaly{
		Parameter:       domain.Temperature,
		Value:           39,
		Threshold:       38,
		Severity:        domain.SeverityHigh,
		DetectionMethod: domain.MethodThreshold,
		Timestamp:       time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	rc := domain.RootCause{CauseLabel: "Cooling system failure", Probability: 88, Recommendation: "Activate radiators"}

	require.NoError(t, c.SendAnomalyAlert(context.Background(), a, rc))
	require.Len(t, pub.inputs, 1)
	in := pub.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123:alerts", aws.ToString(in.TopicArn))
	assert.Equal(t, "Satellite Alert: high anomaly on temperature", aws.ToString(in.Subject))
	assert.Contains(t, aws.ToString(in.Message), "Cooling system failure (88%)")
	assert.Contains(t, aws.ToString(in.Message), "2026-05-01T12:00:00Z")
}

func TestSendMaintenanceAlert(t *testing.T) {
	pub := &fakePublisher{}
	c := NewSNSClientWith(pub, "arn")
	c.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	rec := domain.MaintenanceRecommendation{Component: "battery", DaysRemaining: 10, Priority: domain.PriorityCritical, Action: "URGENT: recondition"}
	require.NoError(t, c.SendMaintenanceAlert(context.Background(), rec))
	assert.Contains(t, aws.ToString(pub.inputs[0].Message), "2026-01-11")
	assert.Equal(t, "Predictive Maintenance Alert: battery", aws.ToString(pub.inputs[0].Subject))
}

func TestSendBatchAlerts(t *testing.T) {
	pub := &fakePublisher{}
	c := NewSNSClientWith(pub, "arn")

	require.NoError(t, c.SendBatchAlerts(context.Background(), nil))
	assert.Empty(t, pub.inputs)

	require.NoError(t, c.SendBatchAlerts(context.Background(), []string{"a", "b"}))
	assert.Equal(t, "Multiple Alerts Detected:\n\n1. a\n2. b\n", aws.ToString(pub.inputs[0].Message))
}

func TestSendAlertWrapsError(t *testing.T) {
	boom := errors.New("throttled")
	c := NewSNSClientWith(&fakePublisher{err: boom}, "arn")
	err := c.SendAlert(context.Background(), "s", "m")
	require.ErrorIs(t, err, boom)
}
