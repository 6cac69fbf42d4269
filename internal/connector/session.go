package connector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zostay/slackchat/internal/logger"
	"github.com/zostay/slackchat/pkg/constants"
)

// Options configures a Session.
type Options struct {
	// Nickname the bot answers to in group channels. Defaults to the
	// display name from the whoami lookup.
	Nickname string

	// CacheTTL bounds the life of directory payloads. Defaults to
	// constants.DefaultCacheTTL.
	CacheTTL time.Duration

	// MarkInterval throttles mark-read calls. Defaults to
	// constants.ReadMarkInterval.
	MarkInterval time.Duration

	// OnTransportError is invoked for asynchronous transport errors
	// (malformed frames, disconnects). Default logs and continues.
	OnTransportError func(*Session, error)
}

// Session is the connector surface: it owns the resolver and its caches,
// exposes the whoami-derived identity, wires the Router to the transport's
// event callback, and forwards resolved messages to the dispatch framework.
type Session struct {
	client     DirectoryClient
	transport  Transport
	dispatcher Dispatcher
	opts       Options

	selfID   string
	self     *Identity
	resolver *Resolver
	router   *Router
	outbound *Outbound
}

// NewSession creates a Session. Initialize must be called before Start.
func NewSession(client DirectoryClient, transport Transport, dispatcher Dispatcher, opts Options) *Session {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = constants.DefaultCacheTTL
	}
	if opts.MarkInterval <= 0 {
		opts.MarkInterval = constants.ReadMarkInterval
	}
	return &Session{
		client:     client,
		transport:  transport,
		dispatcher: dispatcher,
		opts:       opts,
	}
}

// Initialize performs the whoami lookup, builds the resolution pipeline,
// and registers the event callbacks on the transport. A failed identity
// lookup is fatal: the session must not process events as an unknown user.
func (s *Session) Initialize(ctx context.Context) error {
	auth, err := s.client.WhoAmI(ctx)
	if err != nil {
		return &SessionInitError{Err: err}
	}
	s.selfID = auth.UserID
	s.resolver = NewResolver(s.client, s.selfID, s.opts.CacheTTL)

	self, err := s.resolver.Self(ctx)
	if err != nil {
		return &SessionInitError{Err: err}
	}
	s.self = self

	nickname := s.opts.Nickname
	if nickname == "" {
		nickname = self.Nickname
	}

	marker := NewReadMarker(s.client, s.opts.MarkInterval)
	s.router = NewRouter(s.resolver, marker, NewDetector(nickname), s.dispatcher, s.selfID, s)
	s.outbound = NewOutbound(s.resolver)

	s.transport.OnMessageEvent(s.handleEvent)
	s.transport.OnErrorEvent(s.handleTransportError)

	logger.WithFields(logrus.Fields{
		"user_id":  s.selfID,
		"nickname": nickname,
	}).Info("session-initialized")
	return nil
}

// Start runs the transport's event loop. Blocks until the context is
// cancelled or the transport fails.
func (s *Session) Start(ctx context.Context) error {
	if s.router == nil {
		return &SessionInitError{Err: ErrInvalidArgument}
	}
	return s.transport.Start(ctx)
}

// Self returns the session's own identity. Nil before Initialize.
func (s *Session) Self() *Identity {
	return s.self
}

// Resolver exposes the directory resolver for embedding frameworks.
func (s *Session) Resolver() *Resolver {
	return s.resolver
}

// Send resolves the target to a channel and delivers text through the Web
// API send path, which confirms delivery (unlike the RTM socket).
func (s *Session) Send(ctx context.Context, target SendTarget, text string) error {
	ref, err := s.outbound.ResolveSendTarget(ctx, target)
	if err != nil {
		return err
	}

	if len(text) > constants.MaxSlackMessageLength {
		logger.WithFields(logrus.Fields{
			"original_length": len(text),
			"max_length":      constants.MaxSlackMessageLength,
		}).Info("truncating-outbound-message")
		text = text[:constants.MaxSlackMessageLength]
	}

	return s.client.PostMessage(ctx, ref, text)
}

// handleEvent is the transport's message callback. One bad event is logged
// and skipped; it never takes the session down.
func (s *Session) handleEvent(ev InboundEvent) {
	if err := s.router.Route(context.Background(), ev); err != nil {
		logger.WithFields(logrus.Fields{
			"channel": ev.Channel,
			"user":    ev.User,
			"error":   err,
		}).Error("failed-to-process-event")
	}
}

func (s *Session) handleTransportError(err error) {
	if s.opts.OnTransportError != nil {
		s.opts.OnTransportError(s, err)
		return
	}
	logger.WithField("error", err).Error("transport-error")
}
