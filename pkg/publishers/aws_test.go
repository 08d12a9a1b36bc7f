package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/carangas-hq/carangas-catalog/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func testEvent() Event {
	return NewEvent("https://catalog.example.com/cars", "fp-9", domain.Vehicle{ID: "9", Name: "Ka", Brand: "Ford"})
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://example.com/queue", client: client, log: noopLogger{}}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["vehicle_id"]
	if !ok || aws.ToString(attr.StringValue) != "9" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("vehicle_id attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"fingerprint":"fp-9"`) {
		t.Fatalf("MessageBody missing fingerprint: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherSkipsEmptyAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: client, log: noopLogger{}}

	if err := pub.Publish(context.Background(), NewEvent("src", "fp", domain.Vehicle{Name: "Uno"})); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, ok := client.input.MessageAttributes["vehicle_id"]; ok {
		t.Fatalf("empty vehicle_id must not be sent")
	}
	if _, ok := client.input.MessageAttributes["event_type"]; !ok {
		t.Fatalf("event_type attribute missing")
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestSNSPublisherSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:::topic", client: client, log: noopLogger{}}

	if err := pub.Publish(context.Background(), testEvent().WithBrandKnown(true)); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	if attr := client.input.MessageAttributes["brand"]; aws.ToString(attr.StringValue) != "Ford" {
		t.Fatalf("brand attribute = %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"brand_known":true`) {
		t.Fatalf("Message missing brand_known: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSPublisherSendError(t *testing.T) {
	pub := &snsPublisher{id: "topic", topicARN: "arn", client: &fakeSNSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestAWSBuildersWithStaticCredentials(t *testing.T) {
	creds := AWSCredentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}

	sqsPub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:  "queue",
		SQS: &SQSPublisherConfig{QueueURL: "http://localhost:4566/000/q", Region: "us-east-1", Endpoint: "http://localhost:4566", Credentials: creds},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if sqsPub.Type() != TypeSQS {
		t.Fatalf("Type = %s", sqsPub.Type())
	}

	snsPub, err := newSNSPublisher(context.Background(), PublisherConfig{
		ID:  "topic",
		SNS: &SNSPublisherConfig{TopicARN: "arn:aws:sns:us-east-1:000:t", Region: "us-east-1", Credentials: creds},
	}, nil)
	if err != nil {
		t.Fatalf("newSNSPublisher: %v", err)
	}
	if snsPub.ID() != "topic" {
		t.Fatalf("ID = %s", snsPub.ID())
	}
}
