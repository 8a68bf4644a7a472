package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
)

// APIGatewaySink pushes payloads to a connected websocket client through the
// API Gateway Management API.
type APIGatewaySink struct {
	client       *apigatewaymanagementapi.Client
	connectionID string
}

// NewAPIGatewaySink targets one connection on the given callback endpoint
// (wss stage URL rewritten to https).
func NewAPIGatewaySink(cfg aws.Config, endpoint, connectionID string) (*APIGatewaySink, error) {
	if endpoint == "" {
		return nil, errors.New("sink: callback endpoint is required")
	}
	if connectionID == "" {
		return nil, errors.New("sink: connection id is required")
	}
	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &APIGatewaySink{client: client, connectionID: connectionID}, nil
}

func (s *APIGatewaySink) Send(ctx context.Context, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sink: encode payload: %w", err)
	}
	_, err = s.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(s.connectionID),
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("sink: post to connection: %w", err)
	}
	return nil
}

var _ Sink = (*APIGatewaySink)(nil)
