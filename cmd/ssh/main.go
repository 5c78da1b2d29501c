package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/aliens/internal/assets"
	"github.com/tomz197/aliens/internal/audio"
	"github.com/tomz197/aliens/internal/config"
	"github.com/tomz197/aliens/internal/draw"
	"github.com/tomz197/aliens/internal/input"
	logs "github.com/tomz197/aliens/internal/logging"
	"github.com/tomz197/aliens/internal/loop"
	"github.com/tomz197/aliens/internal/physics"
	"github.com/tomz197/aliens/internal/render"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	drainTimeout    = 15 * time.Second
	shutdownTimeout = 5 * time.Second
)

// arcade hosts one independent game per SSH session.
type arcade struct {
	cfg     config.Config
	catalog *assets.Catalog
	logger  *log.Logger

	// closing is cancelled when the server starts shutting down.
	closing context.Context
	games   sync.WaitGroup
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logs.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	catalog, err := assets.Open(cfg.AssetDir)
	if err != nil {
		logger.Fatal("failed to load sprites", "dir", cfg.AssetDir, "err", err)
	}

	closing, startShutdown := context.WithCancel(context.Background())
	defer startShutdown()
	a := &arcade{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		closing: closing,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// End running games and give players a moment to see the notice.
	startShutdown()
	if !a.drain(drainTimeout) {
		logger.Warn("games still running after drain timeout", "timeout", drainTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// drain waits up to timeout for every game to finish.
func (a *arcade) drain(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		a.games.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// gameMiddleware runs a game for the session's lifetime.
func (a *arcade) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		if a.closing.Err() != nil {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}

		a.games.Add(1)
		defer a.games.Done()

		logger := a.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(a.closing, cancel)
		defer stop()

		res, err := a.play(ctx, sess, sizeTracker.getSize, logger)
		switch {
		case a.closing.Err() != nil:
			fmt.Fprint(sess, "Server is shutting down. Thanks for playing!\r\n")
		case err != nil && !errors.Is(err, context.Canceled):
			logger.Error("game error", "err", err)
		default:
			fmt.Fprintf(sess, "Game over. Score: %d\r\n", res.Score)
		}

		logger.Info("session ended", "score", res.Score, "ticks", res.Ticks)
		next(sess)
	}
}

// play runs one game on the session's terminal.
func (a *arcade) play(ctx context.Context, sess ssh.Session, sizeFunc draw.TermSizeFunc, logger *log.Logger) (loop.Result, error) {
	field := physics.NewRect(0, 0, a.cfg.ScreenWidth, a.cfg.ScreenHeight)
	screen := render.NewTerminal(sess, sizeFunc, a.catalog, field)
	if err := screen.Open(); err != nil {
		return loop.Result{}, err
	}
	defer screen.Close()

	keys := input.StartStream(bufio.NewReader(sess))
	defer keys.Close()

	return loop.Run(ctx, loop.Options{
		Config:   a.cfg,
		Sizes:    a.catalog.Sizes(),
		Rand:     loop.NewRand(a.cfg.Seed),
		Input:    keys,
		Renderer: screen,
		Audio:    audio.Nop{},
		Logger:   logger,
	})
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
