// Package service exposes script evaluation over gRPC. Requests and
// responses are google.protobuf.Struct messages, so no generated code is
// needed on either side.
//
// Request fields: script (string), capability (string, optional),
// context (object, optional), state (any, optional initial state for a
// STATE result), take (number, optional). Response fields: result
// (rendered value), type (value type tag), output (text printed by the
// script).
package service

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/funvibe/monadic/internal/capability"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/token"
)

// EvaluatorServer is the server API of the monadic.Evaluator service.
type EvaluatorServer interface {
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes monadic.Evaluator for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: config.ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: config.EvaluateMethod,
			Handler:    evaluateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "monadic/evaluator.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: config.EvaluateFullName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Register adds s to a gRPC server.
func Register(gs *grpc.Server, s EvaluatorServer) {
	gs.RegisterService(&ServiceDesc, s)
}

// Server evaluates each request on a fresh engine.
type Server struct {
	Capability string // used when the request names none
	Take       int
	Tracer     engine.Tracer // optional
	Logger     *log.Logger   // optional

	mu sync.Mutex // serializes Tracer writes from concurrent requests
}

func NewServer(cfg *config.Config) *Server {
	return &Server{Capability: cfg.Capability, Take: cfg.Take}
}

func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	src := fields["script"].GetStringValue()
	if src == "" {
		return nil, status.Error(codes.InvalidArgument, "script is required")
	}

	name := fields["capability"].GetStringValue()
	if name == "" {
		name = s.Capability
	}
	if name == "" {
		name = config.DefaultCapability
	}

	var out bytes.Buffer
	c, err := capability.Lookup(name, &out)
	if err != nil {
		d := diagnostics.NewError(diagnostics.ErrE007, token.Token{}, name)
		return nil, status.Error(codes.NotFound, d.Error())
	}

	opts := []engine.Option{engine.WithOutput(&out)}
	if s.Tracer != nil {
		opts = append(opts, engine.WithTracer(engine.TracerFunc(func(ev engine.Event) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.Tracer.Trace(ev)
		})))
	}
	if s.Logger != nil {
		opts = append(opts, engine.WithLogger(s.Logger))
	}
	e, err := engine.New(c, opts...)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	vars := evaluator.NewContext()
	if cv := fields["context"].GetStructValue(); cv != nil {
		vars, err = evaluator.ContextFromMap(cv.AsMap())
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	renderOpts := capability.RenderOptions{Take: s.Take}
	if n := fields["take"].GetNumberValue(); n > 0 {
		renderOpts.Take = int(n)
	}
	if renderOpts.Take <= 0 {
		renderOpts.Take = config.DefaultTake
	}
	if sv, ok := fields["state"]; ok {
		renderOpts.InitialState, err = evaluator.FromGo(sv.AsInterface())
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	if s.Logger != nil {
		s.Logger.Printf("evaluate capability=%s bytes=%d", name, len(src))
	}
	v, err := e.EvaluateContext(ctx, src, vars)
	if err != nil {
		return nil, toStatus(src, err)
	}
	text, err := capability.Render(v, renderOpts)
	if err != nil {
		return nil, toStatus(src, err)
	}

	return structpb.NewStruct(map[string]interface{}{
		"result": text,
		"type":   string(v.Type()),
		"output": out.String(),
	})
}

// toStatus maps an evaluation failure to a gRPC status whose message is
// the coded diagnostic.
func toStatus(src string, err error) error {
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	d := engine.Diagnose(src, err)
	code := codes.FailedPrecondition
	if d.Code[0] == 'S' || d.Code[0] == 'P' {
		code = codes.InvalidArgument
	}
	return status.Error(code, d.Error())
}
