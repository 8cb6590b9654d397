package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/service"
	"github.com/funvibe/monadic/internal/term"
)

// handleServe implements "monadic serve". It stops gracefully when ctx
// is done.
func handleServe(ctx context.Context, o *options, stdout, stderr io.Writer) int {
	cfg, err := o.loadConfig(".")
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	r, err := newRunner(o, cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	defer r.Close()

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		r.reportError(fmt.Errorf("listen %s: %w", cfg.Addr, err))
		return exitFailure
	}

	srv := service.NewServer(cfg)
	if r.store != nil {
		srv.Tracer = r.store
	}
	if cfg.Verbose {
		srv.Logger = log.New(stderr, "[serve] ", log.LstdFlags)
	}

	gs := grpc.NewServer()
	service.Register(gs, srv)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		gs.GracefulStop()
	}()

	fmt.Fprintf(stdout, "[INFO] %s listening on %s\n", config.ServiceName, lis.Addr())
	if err := gs.Serve(lis); err != nil {
		r.reportError(err)
		return exitFailure
	}
	<-stopped
	return exitOK
}

// handleRemote implements "monadic remote": the script is evaluated by
// a running server.
func handleRemote(ctx context.Context, o *options, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := o.loadConfig(".")
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	palette := term.Palette{}
	if !o.noColor {
		palette = term.For(stderr)
	}
	fail := func(err error) int {
		fmt.Fprintln(stderr, palette.Red("Error:"), err)
		return exitUsage
	}

	_, src, err := readScript(o, stdin)
	if err != nil {
		return fail(err)
	}
	vars, err := o.contextMap(cfg)
	if err != nil {
		return fail(err)
	}
	state, _, err := o.stateValue()
	if err != nil {
		return fail(err)
	}

	c, err := service.Dial(cfg.Addr)
	if err != nil {
		return fail(err)
	}
	defer c.Close()

	resp, err := c.Evaluate(ctx, service.Request{
		Script:     src,
		Capability: cfg.Capability,
		Context:    vars,
		State:      state,
		Take:       cfg.Take,
	})
	if err != nil {
		msg := err.Error()
		if st, ok := status.FromError(err); ok {
			msg = st.Message()
		}
		fmt.Fprintln(stderr, palette.Diagnostic(msg))
		return exitFailure
	}
	fmt.Fprint(stdout, resp.Output)
	fmt.Fprintln(stdout, resp.Result)
	return exitOK
}
