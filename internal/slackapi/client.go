// Package slackapi implements the connector's collaborator interfaces over
// the Slack Web API and RTM stream using slack-go.
package slackapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/zostay/slackchat/internal/connector"
)

// webAPI is the slice of slack.Client this package calls. Split out so
// tests can substitute a mock without a network.
type webAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	MarkConversationContext(ctx context.Context, channel, ts string) error
	JoinConversationContext(ctx context.Context, channelID string) (*slack.Channel, string, []string, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Client implements connector.DirectoryClient over the Slack Web API.
type Client struct {
	api webAPI
}

// NewClient creates a directory client for the given bot token.
func NewClient(token string) *Client {
	return &Client{api: slack.New(token)}
}

// newClientWithAPI is used by tests and by NewRTMTransport, which shares
// the underlying slack.Client.
func newClientWithAPI(api webAPI) *Client {
	return &Client{api: api}
}

func (c *Client) WhoAmI(ctx context.Context) (connector.AuthInfo, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return connector.AuthInfo{}, wrapAPIError("auth.test", err)
	}
	return connector.AuthInfo{UserID: resp.UserID, User: resp.User}, nil
}

func (c *Client) GetUserByID(ctx context.Context, id string) (connector.UserRecord, error) {
	user, err := c.api.GetUserInfoContext(ctx, id)
	if err != nil {
		return connector.UserRecord{}, wrapAPIError("users.info", err)
	}
	return connector.UserRecord{ID: user.ID, Name: user.Name}, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]connector.UserRecord, error) {
	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return nil, wrapAPIError("users.list", err)
	}
	records := make([]connector.UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, connector.UserRecord{ID: u.ID, Name: u.Name})
	}
	return records, nil
}

func (c *Client) ListIMChannels(ctx context.Context) ([]connector.ChannelRecord, error) {
	return c.listConversations(ctx, "im")
}

func (c *Client) ListGroups(ctx context.Context) ([]connector.ChannelRecord, error) {
	return c.listConversations(ctx, "private_channel")
}

func (c *Client) listConversations(ctx context.Context, kind string) ([]connector.ChannelRecord, error) {
	var records []connector.ChannelRecord
	params := &slack.GetConversationsParameters{
		Types: []string{kind},
		Limit: 200,
	}
	for {
		channels, cursor, err := c.api.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, wrapAPIError("conversations.list", err)
		}
		for _, ch := range channels {
			records = append(records, connector.ChannelRecord{
				ID:     ch.ID,
				Name:   ch.Name,
				UserID: ch.User,
			})
		}
		if cursor == "" {
			return records, nil
		}
		params.Cursor = cursor
	}
}

func (c *Client) GetChannelInfo(ctx context.Context, id string) (connector.ChannelRecord, error) {
	ch, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: id})
	if err != nil {
		return connector.ChannelRecord{}, wrapAPIError("conversations.info", err)
	}
	return connector.ChannelRecord{ID: ch.ID, Name: ch.Name, UserID: ch.User}, nil
}

func (c *Client) MarkRead(ctx context.Context, kind connector.ChannelKind, channel, ts string) error {
	// conversations.mark covers all three channel kinds
	if err := c.api.MarkConversationContext(ctx, channel, ts); err != nil {
		return wrapAPIError("conversations.mark", err)
	}
	return nil
}

func (c *Client) JoinChannel(ctx context.Context, name string) error {
	if _, _, _, err := c.api.JoinConversationContext(ctx, name); err != nil {
		return wrapAPIError("conversations.join", err)
	}
	return nil
}

func (c *Client) OpenGroup(ctx context.Context, channel string) error {
	if _, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{ChannelID: channel}); err != nil {
		return wrapAPIError("conversations.open", err)
	}
	return nil
}

func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	if _, _, err := c.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false)); err != nil {
		return wrapAPIError("chat.postMessage", err)
	}
	return nil
}

// wrapAPIError translates slack-go errors into the connector's taxonomy.
// Slack reports failure envelopes as errors carrying the API error code,
// e.g. "user_not_found" or "channel_not_found".
func wrapAPIError(op string, err error) error {
	if strings.Contains(err.Error(), "not_found") {
		return fmt.Errorf("%s: %s: %w", op, err, connector.ErrNotFound)
	}
	return fmt.Errorf("%s: %s: %w", op, err, connector.ErrRemoteCall)
}
