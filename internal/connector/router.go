package connector

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/zostay/slackchat/internal/logger"
)

// Router is the entry point for inbound real-time events. Each event runs
// an independent short pipeline: mark-read side effect, subtype/edit/echo
// filters, channel classification, identity resolution, dispatch.
//
// Resolution failures propagate to the caller; the session boundary decides
// whether to log-and-skip a bad event or escalate.
type Router struct {
	resolver   *Resolver
	marker     *ReadMarker
	detector   *Detector
	dispatcher Dispatcher
	selfID     string
	origin     Replier
}

// NewRouter wires the per-event pipeline. origin is stamped on every
// normalized message so the dispatch framework can reply.
func NewRouter(resolver *Resolver, marker *ReadMarker, detector *Detector, dispatcher Dispatcher, selfID string, origin Replier) *Router {
	return &Router{
		resolver:   resolver,
		marker:     marker,
		detector:   detector,
		dispatcher: dispatcher,
		selfID:     selfID,
		origin:     origin,
	}
}

// Route processes one inbound event.
func (rt *Router) Route(ctx context.Context, ev InboundEvent) error {
	rt.marker.MaybeMarkRead(ctx, ev)

	if ev.SubType != "" {
		logger.WithFields(logrus.Fields{
			"channel": ev.Channel,
			"subtype": ev.SubType,
		}).Debug("ignoring-message-subtype")
		return nil
	}
	if ev.Edited {
		logger.WithField("channel", ev.Channel).Debug("ignoring-edited-message")
		return nil
	}

	// Suppress our own echoes before any resolution work
	if ev.User == rt.selfID {
		return nil
	}

	if KindOf(ev.Channel) == KindDirect {
		return rt.routeDirect(ctx, ev)
	}
	return rt.routeGroup(ctx, ev)
}

func (rt *Router) routeDirect(ctx context.Context, ev InboundEvent) error {
	from, err := rt.resolver.User(ctx, ByID, ev.User)
	if err != nil {
		return err
	}
	self, err := rt.resolver.Self(ctx)
	if err != nil {
		return err
	}

	msg := &Message{
		From:   from,
		To:     self,
		Text:   ev.Text,
		Origin: rt.origin,
	}
	rt.deliver(msg, ev)
	return nil
}

func (rt *Router) routeGroup(ctx context.Context, ev InboundEvent) error {
	self, err := rt.resolver.Self(ctx)
	if err != nil {
		return err
	}

	stripped, addressed := rt.detector.Detect(ev.Text)

	from, err := rt.resolver.User(ctx, ByID, ev.User)
	if err != nil {
		return err
	}
	ref, err := rt.resolver.Channel(ctx, ByID, ev.Channel)
	if err != nil {
		return err
	}

	msg := &Message{
		From:   from,
		Group:  ref,
		Text:   stripped,
		Origin: rt.origin,
	}
	if addressed {
		msg.To = self
	}
	rt.deliver(msg, ev)
	return nil
}

func (rt *Router) deliver(msg *Message, ev InboundEvent) {
	logger.WithFields(logrus.Fields{
		"from":      msg.From.Username,
		"group":     msg.Group,
		"addressed": msg.To != nil,
	}).Debug("dispatching-message")

	rt.dispatcher.Dispatch(msg)
	rt.dispatcher.Resend(msg)
}
