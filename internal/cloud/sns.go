package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

// Publisher is the subset of the SNS API the client uses.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient wraps AWS SNS client for notification operations
type SNSClient struct {
	svc      Publisher
	topicArn string
	now      func() time.Time
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewSNSClientWith(sns.NewFromConfig(cfg), topicArn), nil
}

// NewSNSClientWith uses an existing publisher.
func NewSNSClientWith(svc Publisher, topicArn string) *SNSClient {
	return &SNSClient{svc: svc, topicArn: topicArn, now: time.Now}
}

// SendAlert sends an alert notification via SNS
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Str("subject", subject).Msg("alert sent")
	return nil
}

// SendAnomalyAlert reports an anomaly together with its probable cause.
func (c *SNSClient) SendAnomalyAlert(ctx context.Context, a domain.Anomaly, rc domain.RootCause) error {
	subject := fmt.Sprintf("Satellite Alert: %s anomaly on %s", a.Severity, a.Parameter)
	message := fmt.Sprintf(
		"Anomaly Detection Alert\n\n"+
			"Parameter: %s\n"+
			"Value: %.2f (critical %.2f)\n"+
			"Severity: %s\n"+
			"Detected by: %s\n"+
			"Probable cause: %s (%d%%)\n"+
			"Recommendation: %s\n"+
			"Time: %s\n",
		a.Parameter,
		a.Value,
		a.Threshold,
		a.Severity,
		a.DetectionMethod,
		rc.CauseLabel,
		rc.Probability,
		rc.Recommendation,
		a.Timestamp.Format(time.RFC3339),
	)

	return c.SendAlert(ctx, subject, message)
}

// SendMaintenanceAlert sends a predictive maintenance alert
func (c *SNSClient) SendMaintenanceAlert(ctx context.Context, rec domain.MaintenanceRecommendation) error {
	due := c.now().AddDate(0, 0, rec.DaysRemaining)
	subject := fmt.Sprintf("Predictive Maintenance Alert: %s", rec.Component)
	message := fmt.Sprintf(
		"Subsystem Maintenance Required\n\n"+
			"Component: %s\n"+
			"Priority: %s\n"+
			"Days Remaining: %d\n"+
			"Projected Limit Date: %s\n"+
			"Action: %s\n",
		rec.Component,
		rec.Priority,
		rec.DaysRemaining,
		due.Format("2006-01-02"),
		rec.Action,
	)

	return c.SendAlert(ctx, subject, message)
}

// SendBatchAlerts sends multiple alerts in one notification
func (c *SNSClient) SendBatchAlerts(ctx context.Context, alerts []string) error {
	if len(alerts) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("Multiple Alerts Detected:\n\n")
	for i, alert := range alerts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, alert)
	}

	return c.SendAlert(ctx, fmt.Sprintf("Satellite Health: %d Alerts", len(alerts)), b.String())
}
