package service

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/funvibe/monadic/internal/config"
)

// Request is the client-side view of an Evaluate call.
type Request struct {
	Script     string
	Capability string
	Context    map[string]interface{}
	State      interface{}
	Take       int
}

// Response carries the rendered result of a remote evaluation.
type Response struct {
	Result string
	Type   string
	Output string
}

// Client calls a remote monadic.Evaluator.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to target without transport security. Extra options are
// appended after the credentials option.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc connect to %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) Evaluate(ctx context.Context, req Request) (*Response, error) {
	fields := map[string]interface{}{"script": req.Script}
	if req.Capability != "" {
		fields["capability"] = req.Capability
	}
	if len(req.Context) > 0 {
		fields["context"] = req.Context
	}
	if req.State != nil {
		fields["state"] = req.State
	}
	if req.Take > 0 {
		fields["take"] = req.Take
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, config.EvaluateFullName, in, out); err != nil {
		return nil, err
	}
	f := out.GetFields()
	return &Response{
		Result: f["result"].GetStringValue(),
		Type:   f["type"].GetStringValue(),
		Output: f["output"].GetStringValue(),
	}, nil
}
