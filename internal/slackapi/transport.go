package slackapi

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/zostay/slackchat/internal/connector"
	"github.com/zostay/slackchat/internal/logger"
)

// RTMTransport implements connector.Transport over Slack's RTM stream.
// Connection management (reconnect, ping) is slack-go's job; this type
// only converts events and fans them out to the registered callbacks.
type RTMTransport struct {
	mu             sync.RWMutex
	rtm            *slack.RTM
	messageHandler func(connector.InboundEvent)
	errorHandler   func(error)
}

// NewRTM builds the directory client and RTM transport for one bot token,
// sharing a single slack.Client underneath.
func NewRTM(token string) (*Client, *RTMTransport) {
	api := slack.New(token)
	return newClientWithAPI(api), &RTMTransport{rtm: api.NewRTM()}
}

// OnMessageEvent registers the inbound message callback.
func (t *RTMTransport) OnMessageEvent(handler func(connector.InboundEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageHandler = handler
}

// OnErrorEvent registers the asynchronous error callback.
func (t *RTMTransport) OnErrorEvent(handler func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorHandler = handler
}

// Start opens the RTM connection and pumps events until ctx is cancelled
// or the event stream closes.
func (t *RTMTransport) Start(ctx context.Context) error {
	logger.Info("starting-rtm-transport")
	go t.rtm.ManageConnection()

	for {
		select {
		case <-ctx.Done():
			if err := t.rtm.Disconnect(); err != nil {
				logger.WithField("error", err).Warn("rtm-disconnect-failed")
			}
			return ctx.Err()
		case msg, ok := <-t.rtm.IncomingEvents:
			if !ok {
				return nil
			}
			t.handleEvent(msg)
		}
	}
}

// Send delivers text over the RTM socket. Fire-and-forget: Slack does not
// confirm socket sends, which is why Session prefers the Web API path.
func (t *RTMTransport) Send(channel, text string) error {
	t.rtm.SendMessage(t.rtm.NewOutgoingMessage(text, channel))
	return nil
}

func (t *RTMTransport) handleEvent(msg slack.RTMEvent) {
	switch ev := msg.Data.(type) {
	case *slack.MessageEvent:
		handler := t.getMessageHandler()
		if handler == nil {
			return
		}
		handler(connector.InboundEvent{
			Channel:   ev.Channel,
			User:      ev.User,
			Text:      ev.Text,
			Timestamp: ev.Timestamp,
			SubType:   ev.SubType,
			Edited:    ev.Edited != nil,
		})

	case *slack.RTMError:
		t.reportError(ev)

	case *slack.ConnectionErrorEvent:
		t.reportError(ev)

	case *slack.InvalidAuthEvent:
		t.reportError(errors.New("rtm: invalid credentials"))

	case *slack.ConnectedEvent:
		logger.WithFields(logrus.Fields{
			"attempt": ev.ConnectionCount,
		}).Info("rtm-connected")

	case *slack.DisconnectedEvent:
		logger.WithField("intentional", ev.Intentional).Info("rtm-disconnected")
	}
}

func (t *RTMTransport) getMessageHandler() func(connector.InboundEvent) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.messageHandler
}

func (t *RTMTransport) reportError(err error) {
	t.mu.RLock()
	handler := t.errorHandler
	t.mu.RUnlock()

	if handler != nil {
		handler(err)
		return
	}
	logger.WithField("error", err).Error("rtm-error")
}
