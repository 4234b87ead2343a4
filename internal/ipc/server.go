package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"sw/internal/daemon"
	"sw/internal/logging"
)

// Server accepts RPC connections on the daemon socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer binds the socket at path and registers the SW service. A stale
// socket file left by a crashed daemon is removed first.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{daemon: d, logger: logging.WithComponent(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName(ServiceName, svc); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve accepts connections until the context is canceled. Request handling
// itself is serialized inside the daemon, so concurrent connections are
// safe here.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", logging.String(logging.FieldSocket, s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close drains in-flight requests and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String(logging.FieldSocket, s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) Set(req SetRequest, resp *SetResponse) error {
	mode, err := daemon.ParseMode(req.Mode)
	if err != nil {
		resp.Status = StatusError
		resp.Kind = KindInternal
		resp.Error = err.Error()
		return nil
	}

	applied, err := s.daemon.Set(s.ctx, req.Path, mode)
	if err != nil {
		resp.Status = StatusError
		resp.Kind = Classify(err)
		resp.Error = err.Error()
		s.logger.Debug("set request failed",
			logging.String("mode", string(mode)),
			logging.String("kind", resp.Kind),
			logging.Error(err))
		return nil
	}
	resp.Status = StatusOK
	resp.Wallpaper = applied
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Status = StatusOK
	resp.Current = status.Current
	resp.Backend = status.Backend
	resp.UptimeSeconds = int64(status.Uptime.Seconds())
	resp.PID = status.PID
	resp.QueueLength = status.QueueLength
	resp.HistoryLength = status.HistoryLen
	return nil
}

func (s *service) ReloadConfig(_ ReloadConfigRequest, resp *ReloadConfigResponse) error {
	recovered, err := s.daemon.ReloadConfig()
	if err != nil {
		resp.Status = StatusError
		resp.Kind = Classify(err)
		resp.Error = err.Error()
		return nil
	}
	resp.Status = StatusOK
	resp.Recovered = recovered
	return nil
}
