package service_test

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/service"
)

func startServer(t *testing.T, srv *service.Server) *service.Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	service.Register(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	c, err := service.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestEvaluate(t *testing.T) {
	c := startServer(t, service.NewServer(config.Default()))

	tests := []struct {
		name   string
		req    service.Request
		result string
		typ    string
		output string
	}{
		{
			name:   "default capability",
			req:    service.Request{Script: "bind(x, some(2)); unit(x * 3);"},
			result: "Some(6)",
			typ:    "MAYBE",
		},
		{
			name:   "context",
			req:    service.Request{Script: "unit(x + 1);", Context: map[string]interface{}{"x": 41}},
			result: "Some(42)",
			typ:    "MAYBE",
		},
		{
			name:   "list",
			req:    service.Request{Script: "bind(x, [1, 2]); unit(x * 10);", Capability: config.ListCapability},
			result: "[10, 20]",
			typ:    "LIST",
		},
		{
			name: "state",
			req: service.Request{
				Script:     "bind(s, get_state()); do_(set_state(s + 1)); unit(s * 10);",
				Capability: config.StateCapability,
				State:      4,
			},
			result: "State(5, 40)",
			typ:    "STATE",
		},
		{
			name:   "output",
			req:    service.Request{Script: "print(1); unit(2);"},
			result: "Some(2)",
			typ:    "MAYBE",
			output: "1\n",
		},
		{
			name:   "trace",
			req:    service.Request{Script: "unit(1); unit(2); unit(3);", Capability: config.DelayTraceCapability},
			result: "6",
			typ:    "INTEGER",
			output: "delay\nrun\nreturn 1\ndelay\ncombine: (1, ?)\nreturn 2\ndelay\ncombine: (2, ?)\nreturn 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Evaluate(context.Background(), tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.Result != tt.result {
				t.Errorf("result = %q, want %q", resp.Result, tt.result)
			}
			if resp.Type != tt.typ {
				t.Errorf("type = %q, want %q", resp.Type, tt.typ)
			}
			if resp.Output != tt.output {
				t.Errorf("output = %q, want %q", resp.Output, tt.output)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	c := startServer(t, service.NewServer(config.Default()))

	tests := []struct {
		name     string
		req      service.Request
		code     codes.Code
		contains string
	}{
		{"empty script", service.Request{}, codes.InvalidArgument, "script is required"},
		{"unknown capability", service.Request{Script: "unit(1);", Capability: "nope"}, codes.NotFound, "E007"},
		{"syntax", service.Request{Script: "unit(1 +);"}, codes.InvalidArgument, "S006"},
		{"structure", service.Request{Script: "while (x) { unit(1); }"}, codes.InvalidArgument, "S001"},
		{"runtime", service.Request{Script: "unit(y);"}, codes.FailedPrecondition, "E005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Evaluate(context.Background(), tt.req)
			st, ok := status.FromError(err)
			if !ok {
				t.Fatalf("not a status error: %v", err)
			}
			if st.Code() != tt.code {
				t.Errorf("code = %s, want %s (%s)", st.Code(), tt.code, st.Message())
			}
			if !strings.Contains(st.Message(), tt.contains) {
				t.Errorf("%q does not contain %q", st.Message(), tt.contains)
			}
		})
	}
}

func TestEvaluateTraces(t *testing.T) {
	var (
		mu     sync.Mutex
		events []engine.Event
	)
	srv := service.NewServer(config.Default())
	srv.Tracer = engine.TracerFunc(func(ev engine.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	c := startServer(t, srv)

	if _, err := c.Evaluate(context.Background(), service.Request{Script: "bind(x, some(1)); unit(x);"}); err != nil {
		t.Fatal(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(events) == 0 {
		t.Fatal("no events traced")
	}
	if events[0].Op != "bind" {
		t.Errorf("first event = %s, want bind", events[0].Op)
	}
}
