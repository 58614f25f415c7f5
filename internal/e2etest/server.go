package e2etest

import (
	"context"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/logging"
	"io"
	"log/slog"
)

// LogAddrKey is the log attribute under which the server reports its listen address.
const LogAddrKey = "addr"

const readyPath = "/api/healthy"

// RunFunc starts a server and blocks until ctx is done. It has the signature of the web server's run function.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// Server is a server started by StartServer together with a client pointed at it.
type Server struct {
	url    string
	client *Client
}

// StartServer runs the server in the background and returns once it answers on the health endpoint.
//
// Server logs go to logSink, usually [io.Discard]. lookupEnv has the signature of [os.LookupEnv]. run must log
// the address it listens on under [LogAddrKey]; the port may be dynamically allocated.
func StartServer(ctx context.Context, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (*Server, error) {
	ctx, cancel := context.WithCancelCause(ctx)

	addrCh := make(chan string, 1)
	captureAddr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == LogAddrKey {
			select {
			case addrCh <- a.Value.String():
			default:
			}
		}
		return a
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: captureAddr,
	})))

	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()

	var addr string
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server stopped before listening")
	case addr = <-addrCh:
	}

	serverURL := "http://" + addr
	client, err := NewClient(serverURL, "localhost", serverURL)
	if err != nil {
		return nil, errors.Wrap(err, "new client")
	}
	if err = client.WaitForReady(ctx, readyPath); err != nil {
		return nil, errors.Wrap(err, "wait for ready")
	}
	return &Server{url: serverURL, client: client}, nil
}

func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}
