package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	chatrender "github.com/bnema/matchday-bot/internal/adapters/render/chat"
	"github.com/bnema/matchday-bot/internal/application"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	chatAckTimeout         = 5 * time.Second
	metricsShutdownTimeout = 2 * time.Second
	controlsPerRow         = 6
)

const chatUsage = "Commands: /<command> [args], #<n> to press the n-th control, press <token>, as <user>, quit"

func newChatCmd(app *app) *cobra.Command {
	var user string
	var showTokens bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run an interactive chat session in the terminal",
		Long:  "chat reads slash commands and button presses from stdin and answers the way the bot answers in a chat channel. " + chatUsage + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app, domain.UserID(user), showTokens)
		},
	}

	cmd.Flags().StringVar(&user, "user", defaultCLIUser, "User the session starts as")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "Print navigation tokens beside controls")

	return cmd
}

func runChat(cmd *cobra.Command, app *app, user domain.UserID, showTokens bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	shell := &chatShell{
		app:  app,
		out:  cmd.OutOrStdout(),
		user: user,
		acks: make(chan bool, 1),
		opts: chatrender.RenderOptions{ShowTokens: showTokens, ControlsPerRow: controlsPerRow},
	}
	shell.router = application.NewRouter(
		ackingHandler{Bot: app.bot, acks: shell.acks},
		application.ViewSinkFunc(shell.update),
		app.clock,
		app.logger.Named("router"),
	)

	var janitors sync.WaitGroup
	interval := app.cfg.Cache.SweepInterval
	for _, run := range []func(){
		func() { app.catalog.Run(ctx, interval) },
		func() { app.sessions.Run(ctx, interval) },
		func() { app.gate.Run(ctx, interval, app.clock.Now) },
	} {
		janitors.Add(1)
		go func() {
			defer janitors.Done()
			run()
		}()
	}

	stopMetrics, err := serveMetrics(app)
	if err != nil {
		cancel()
		janitors.Wait()
		return err
	}

	shell.printf("%s\n", chatUsage)
	loopErr := shell.loop(ctx, cmd.InOrStdin())

	cancel()
	shell.router.Wait()
	janitors.Wait()
	stopMetrics()

	return loopErr
}

// ackingHandler reports rejected presses to the shell, which otherwise waits for the next view.
type ackingHandler struct {
	*application.Bot
	acks chan<- bool
}

func (h ackingHandler) HandleCallback(ctx context.Context, cb domain.Callback) (domain.View, bool) {
	view, ok := h.Bot.HandleCallback(ctx, cb)
	if !ok {
		signal(h.acks, false)
	}
	return view, ok
}

type chatShell struct {
	app    *app
	router *application.Router
	opts   chatrender.RenderOptions
	acks   chan bool
	user   domain.UserID

	mu   sync.Mutex
	out  io.Writer
	last domain.View
}

func (s *chatShell) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case line == "quit" || line == "exit":
			return nil
		case strings.HasPrefix(line, "/"):
			s.command(ctx, line)
		case strings.HasPrefix(line, "#"):
			s.pressPosition(ctx, strings.TrimPrefix(line, "#"))
		case strings.HasPrefix(line, "press "):
			s.press(ctx, strings.TrimSpace(strings.TrimPrefix(line, "press ")))
		case strings.HasPrefix(line, "as "):
			s.user = domain.UserID(strings.TrimSpace(strings.TrimPrefix(line, "as ")))
			s.printf("now acting as %s\n", s.user)
		default:
			s.printf("unknown input %q. %s\n", line, chatUsage)
		}

		if err := ctx.Err(); err != nil {
			return nil
		}
	}

	return scanner.Err()
}

func (s *chatShell) command(ctx context.Context, line string) {
	fields := strings.Fields(line)
	reply, err := s.app.bot.HandleCommand(ctx, domain.Invocation{
		Command:   fields[0],
		Args:      fields[1:],
		InvokerID: s.user,
	})
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}

	s.show(reply.View)
	s.router.Open(ctx, reply)
}

func (s *chatShell) pressPosition(ctx context.Context, raw string) {
	position, err := strconv.Atoi(strings.TrimSpace(raw))

	s.mu.Lock()
	controls := s.last.Controls
	s.mu.Unlock()

	if err != nil || position < 1 || position > len(controls) {
		s.printf("no control #%s on the current view\n", raw)
		return
	}

	control := controls[position-1]
	if control.Disabled {
		s.printf("control #%d is disabled\n", position)
		return
	}

	s.press(ctx, control.Token)
}

// press dispatches token and waits until the collector answered.
func (s *chatShell) press(ctx context.Context, token string) {
	drain(s.acks)

	if !s.router.Dispatch(domain.Callback{Token: token, InvokerID: s.user}) {
		s.printf("nothing listens to that control anymore\n")
		return
	}

	select {
	case updated := <-s.acks:
		if !updated {
			s.printf("ignored\n")
		}
	case <-time.After(chatAckTimeout):
		s.printf("no answer yet\n")
	case <-ctx.Done():
	}
}

func (s *chatShell) update(_ domain.SessionID, view domain.View) {
	s.show(view)
	signal(s.acks, true)
}

func (s *chatShell) show(view domain.View) {
	rendered, err := s.app.render(view, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = view
	if err != nil {
		_, _ = fmt.Fprintf(s.out, "render failed: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(s.out, rendered)
}

func (s *chatShell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.out, format, args...)
}

func signal(ch chan<- bool, value bool) {
	select {
	case ch <- value:
	default:
	}
}

func drain(ch <-chan bool) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// serveMetrics exposes /metrics on metrics.addr until the returned stop function runs.
func serveMetrics(app *app) (func(), error) {
	if app.cfg.MetricsAddr == "" {
		return func() {}, nil
	}

	listener, err := net.Listen("tcp", app.cfg.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", app.cfg.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	app.logger.Info("serving metrics", zap.String("addr", listener.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(ctx)
		<-done
	}, nil
}
