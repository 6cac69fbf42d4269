// Package connector implements the message-ingestion and identity-resolution
// pipeline bridging a Slack real-time session to a bot-dispatch framework.
//
// Inbound flow: transport event -> Router -> ReadMarker side effect -> filters
// -> Resolver (sender/channel identity) -> Detector (group mentions) ->
// normalized Message -> Dispatcher. Outbound flow: Message reply -> Outbound
// -> Resolver -> Web API send.
//
// The transport session, the HTTP API client, and the dispatch framework are
// external collaborators; this package only sees the interfaces below. The
// concrete slack-go implementations live in internal/slackapi.
package connector

import (
	"context"
	"time"
)

// Identity is a resolved platform user. Immutable once constructed.
type Identity struct {
	Username string // opaque platform user ID
	Nickname string // display name
	IsSelf   bool   // computed against the session's own user ID
}

// InboundEvent is a raw real-time message payload. Consumed once by the
// Router and not retained.
type InboundEvent struct {
	Channel   string
	User      string
	Text      string
	Timestamp string
	SubType   string // non-empty for message subtypes (joins, topic changes, ...)
	Edited    bool   // true when the event carries an edit marker
}

// Message is the normalized message handed to the dispatch framework.
// Exactly one of To/Group describes the destination context, except for a
// group message addressed to the bot, which carries both.
type Message struct {
	From   *Identity
	To     *Identity // bot's own identity when addressed, nil otherwise
	Group  string    // channel ref for group-channel origin, empty for IMs
	Text   string
	Origin Replier // the session the message arrived on, for replies
}

// SendTarget names the destination of an outbound send. Exactly one of
// To (user ID) or Group (channel ID) must be set.
type SendTarget struct {
	To    string
	Group string
}

// LookupBy selects a directory lookup mode.
type LookupBy string

const (
	ByID   LookupBy = "id"
	ByName LookupBy = "name"
	ByUser LookupBy = "user"
)

// UserRecord is the directory API's view of a user.
type UserRecord struct {
	ID   string
	Name string
}

// ChannelRecord is the directory API's view of a conversation. UserID is
// set for IM channels only.
type ChannelRecord struct {
	ID     string
	Name   string
	UserID string
}

// AuthInfo identifies the authenticated session.
type AuthInfo struct {
	UserID string
	User   string
}

// DirectoryClient is the request/response API used to resolve users,
// channels, and groups, and to send or mark messages. Implementations
// translate failure envelopes into errors wrapping ErrRemoteCall or
// ErrNotFound.
type DirectoryClient interface {
	WhoAmI(ctx context.Context) (AuthInfo, error)
	GetUserByID(ctx context.Context, id string) (UserRecord, error)
	ListUsers(ctx context.Context) ([]UserRecord, error)
	ListIMChannels(ctx context.Context) ([]ChannelRecord, error)
	ListGroups(ctx context.Context) ([]ChannelRecord, error)
	GetChannelInfo(ctx context.Context, id string) (ChannelRecord, error)
	MarkRead(ctx context.Context, kind ChannelKind, channel, ts string) error
	JoinChannel(ctx context.Context, name string) error
	OpenGroup(ctx context.Context, channel string) error
	PostMessage(ctx context.Context, channel, text string) error
}

// Transport is the persistent real-time event stream to the platform.
// Connect/reconnect/heartbeat handling belongs to the implementation.
type Transport interface {
	OnMessageEvent(handler func(InboundEvent))
	OnErrorEvent(handler func(error))
	Start(ctx context.Context) error
	Send(channel, text string) error
}

// Dispatcher is the external bot-dispatch framework. Both methods are
// invoked for every accepted inbound event; Resend is an echo/logging hook
// distinct from dispatch.
type Dispatcher interface {
	Dispatch(msg *Message)
	Resend(msg *Message)
}

// Replier can deliver an outbound reply. Implemented by Session.
type Replier interface {
	Send(ctx context.Context, target SendTarget, text string) error
}

// Clock returns the current wall-clock time. Swapped out in tests.
type Clock func() time.Time
