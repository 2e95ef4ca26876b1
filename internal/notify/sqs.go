package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSConfig struct {
	QueueURL  string
	Region    string
	AccessKey string
	Secret    string
}

type SQSSink struct {
	client   sqsAPI
	queueURL string
}

// NewSQSSink uses static credentials when both keys are set and the default
// AWS chain otherwise.
func NewSQSSink(ctx context.Context, cfg SQSConfig) (*SQSSink, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.Secret != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.Secret, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify.NewSQSSink: load aws config: %w", err)
	}
	return &SQSSink{client: sqs.NewFromConfig(awsCfg), queueURL: cfg.QueueURL}, nil
}

func (s *SQSSink) Name() string { return "sqs" }

func (s *SQSSink) Send(ctx context.Context, ev Event, body []byte) error {
	attrs := map[string]types.MessageAttributeValue{}
	// SQS rejects empty string attributes.
	if ev.Name != "" {
		attrs["event"] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(ev.Name)}
	}
	if ev.OrderID != "" {
		attrs["order_id"] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(ev.OrderID)}
	}

	_, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queueURL),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sqs send: %w", err)
	}
	return nil
}
