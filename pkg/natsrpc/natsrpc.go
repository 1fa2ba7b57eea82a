package natsrpc

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	apperrors "go-orders/pkg/errors"
	"go-orders/pkg/logger"
)

const (
	// TraceIDHeader is the message header for trace ID propagation
	TraceIDHeader = "X-Trace-Id"
)

// Response is the reply envelope for all request/reply exchanges
type Response struct {
	Data  json.RawMessage      `json:"data,omitempty"`
	Error *apperrors.ErrorBody `json:"error,omitempty"`
}

// Connect establishes a NATS connection with reconnect logging
func Connect(servers []string, name string, tlsConfig *tls.Config, log *logger.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	if tlsConfig != nil {
		opts = append(opts, nats.Secure(tlsConfig))
	}

	return nats.Connect(strings.Join(servers, ","), opts...)
}

// HandlerFunc handles a decoded request and returns the reply payload
type HandlerFunc func(ctx context.Context, data []byte) (interface{}, error)

// Server dispatches request/reply subjects to handlers with tracing,
// timeout, and error normalization applied around every call
type Server struct {
	conn    *nats.Conn
	queue   string
	timeout time.Duration
	log     *logger.Logger
	subs    []*nats.Subscription
}

// NewServer creates a new RPC server on an existing connection
func NewServer(conn *nats.Conn, queue string, timeout time.Duration, log *logger.Logger) *Server {
	return &Server{
		conn:    conn,
		queue:   queue,
		timeout: timeout,
		log:     log,
	}
}

// Handle subscribes a handler to a subject within the server's queue group
func (s *Server) Handle(subject string, handler HandlerFunc) error {
	sub, err := s.conn.QueueSubscribe(subject, s.queue, func(msg *nats.Msg) {
		go s.dispatch(subject, msg, handler)
	})
	if err != nil {
		return err
	}

	s.subs = append(s.subs, sub)
	return nil
}

func (s *Server) dispatch(subject string, msg *nats.Msg, handler HandlerFunc) {
	start := time.Now()

	// Extract or generate trace ID
	traceID := msg.Header.Get(TraceIDHeader)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	ctx := logger.WithTraceIDContext(context.Background(), traceID)

	// Apply timeout
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := handler(ctx, msg.Data)

	logFields := []zap.Field{
		zap.String("subject", subject),
		zap.Duration("duration", time.Since(start)),
		zap.String("trace_id", traceID),
	}

	if err != nil {
		body := apperrors.ToBody(err)
		logFields = append(logFields, zap.String("code", body.Code))
		s.log.WithContext(ctx).Error("rpc request failed", logFields...)
		s.reply(ctx, msg, traceID, Response{Error: &body})
		return
	}

	s.log.WithContext(ctx).Info("rpc request completed", logFields...)

	data, err := json.Marshal(result)
	if err != nil {
		body := apperrors.ToBody(apperrors.NewInternal("failed to encode reply", err))
		s.reply(ctx, msg, traceID, Response{Error: &body})
		return
	}

	s.reply(ctx, msg, traceID, Response{Data: data})
}

func (s *Server) reply(ctx context.Context, msg *nats.Msg, traceID string, resp Response) {
	if msg.Reply == "" {
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.log.WithContext(ctx).Error("failed to marshal reply envelope", zap.Error(err))
		return
	}

	out := nats.NewMsg(msg.Reply)
	out.Header.Set(TraceIDHeader, traceID)
	out.Data = body

	if err := msg.RespondMsg(out); err != nil {
		s.log.WithContext(ctx).Error("failed to send reply", zap.Error(err))
	}
}

// Drain unsubscribes all handlers, letting in-flight requests finish
func (s *Server) Drain() error {
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			return err
		}
	}
	return nil
}

// Client issues request/reply calls with trace-ID propagation and timeout
type Client struct {
	conn    *nats.Conn
	timeout time.Duration
}

// NewClient creates a new RPC client on an existing connection.
// The connection is shared and safe for concurrent use.
func NewClient(conn *nats.Conn, timeout time.Duration) *Client {
	return &Client{
		conn:    conn,
		timeout: timeout,
	}
}

// Request sends a request and decodes the reply payload into out.
// Error replies from the peer are returned as AppErrors.
func (c *Client) Request(ctx context.Context, subject string, req, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return apperrors.NewInternal("failed to encode request", err)
	}

	// Apply timeout
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg := nats.NewMsg(subject)
	msg.Data = body
	if traceID := logger.GetTraceID(ctx); traceID != "" {
		msg.Header.Set(TraceIDHeader, traceID)
	}

	reply, err := c.conn.RequestMsgWithContext(ctx, msg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, nats.ErrNoResponders) {
			return apperrors.NewUnavailable("no response from "+subject, err)
		}
		return apperrors.NewUnavailable("request to "+subject+" failed", err)
	}

	var resp Response
	if err := json.Unmarshal(reply.Data, &resp); err != nil {
		return apperrors.NewInternal("invalid reply from "+subject, err)
	}

	if resp.Error != nil {
		return apperrors.FromBody(*resp.Error)
	}

	if out != nil && resp.Data != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return apperrors.NewInternal("failed to decode reply from "+subject, err)
		}
	}

	return nil
}
