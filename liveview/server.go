// Package liveview streams robot pose telemetry to an external visualizer
// over a line-delimited JSON TCP feed, ported from PedroPathingLiveView.java.
package liveview

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.pedropathing.dev/plus/logging"
	"go.pedropathing.dev/plus/pathing"
	"go.pedropathing.dev/plus/utils"
)

// DefaultPort is the TCP port the visualizer expects, matching the source.
const DefaultPort = 8888

// DefaultUpdateInterval is how often a connected client receives a new pose
// line, matching the source's 50ms cadence.
const DefaultUpdateInterval = 50 * time.Millisecond

// PoseProvider supplies the current robot pose on demand. A Follower
// satisfies this trivially via its Pose method.
type PoseProvider func() pathing.Pose

// Server accepts TCP connections and streams one JSON pose object per line
// to each client at UpdateInterval, reading the current pose from whatever
// provider was most recently installed via SetProvider/SetFollower. It is
// intended to persist across autonomous runs: Start is idempotent and
// Disable only clears the provider, leaving the listener running.
type Server struct {
	Port           int
	UpdateInterval time.Duration
	logger         logging.Logger

	provider atomic.Pointer[PoseProvider]

	mu       sync.Mutex
	running  bool
	listener net.Listener
	workers  utils.StoppableWorkers
}

// New builds a Server bound to DefaultPort with DefaultUpdateInterval.
func New(logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Global()
	}
	return &Server{Port: DefaultPort, UpdateInterval: DefaultUpdateInterval, logger: logger}
}

// SetFollower installs follower.Pose as the active pose provider. Passing
// nil clears it, equivalent to Disable.
func (s *Server) SetFollower(follower pathing.Follower) {
	if follower == nil {
		s.clearProvider()
		return
	}
	s.SetProvider(follower.Pose)
}

// SetProvider installs an arbitrary pose provider.
func (s *Server) SetProvider(provider PoseProvider) {
	if provider == nil {
		s.clearProvider()
		return
	}
	s.provider.Store(&provider)
}

// Disable clears the pose provider without stopping the listener, so
// reconnecting clients keep working across the next Start.
func (s *Server) Disable() {
	s.clearProvider()
}

func (s *Server) clearProvider() {
	s.provider.Store(nil)
}

// Start begins accepting connections in the background if not already
// running. Safe to call multiple times.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		return err
	}

	s.listener = listener
	s.running = true
	s.workers = utils.NewStoppableWorkers(s.acceptLoop)
	return nil
}

// Stop shuts down the listener and every client connection's goroutine.
// Typically unnecessary: the server is meant to persist across autonomous
// runs the way the source's singleton does.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	listener := s.listener
	workers := s.workers
	s.listener = nil
	s.workers = nil
	s.mu.Unlock()

	if listener != nil {
		_ = listener.Close()
	}
	if workers != nil {
		workers.Stop()
	}
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				s.logger.Warnw("liveview: accept failed", "error", err)
				return
			}
		}
		s.workers.AddWorkers(func(workerCtx context.Context) {
			s.handleClient(workerCtx, conn)
		})
	}
}

func (s *Server) handleClient(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	writer := bufio.NewWriter(conn)

	ticker := time.NewTicker(s.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		line, ok := s.poseLine()
		if ok {
			if _, err := writer.WriteString(line + "\n"); err != nil {
				return
			}
			if err := writer.Flush(); err != nil {
				return
			}
		}
	}
}

func (s *Server) poseLine() (string, bool) {
	providerPtr := s.provider.Load()
	if providerPtr == nil {
		return "", false
	}
	return safePoseLine(*providerPtr), true
}

func safePoseLine(provider PoseProvider) (line string) {
	defer func() {
		if r := recover(); r != nil {
			line = `{"error":"provider_error"}`
		}
	}()
	pose := provider()
	return fmt.Sprintf(`{"x":%.4f, "y":%.4f, "heading":%.4f}`, pose.X, pose.Y, pose.Heading)
}
