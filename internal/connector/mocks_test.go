package connector

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// mockDirectoryClient is a scriptable DirectoryClient that records call
// counts per operation, so tests can assert on cache behavior.
type mockDirectoryClient struct {
	mu sync.Mutex

	auth    AuthInfo
	authErr error

	users      map[string]UserRecord
	userList   []UserRecord
	imChannels []ChannelRecord
	groups     []ChannelRecord
	channels   map[string]ChannelRecord

	failAll error // when set, every lookup fails with this error

	calls  map[string]int
	marked []markCall
	posted []postCall
	joined []string
	opened []string
}

type markCall struct {
	kind    ChannelKind
	channel string
	ts      string
}

type postCall struct {
	channel string
	text    string
}

func newMockDirectoryClient() *mockDirectoryClient {
	return &mockDirectoryClient{
		auth:     AuthInfo{UserID: "U0", User: "bot"},
		users:    map[string]UserRecord{"U0": {ID: "U0", Name: "bot"}},
		channels: map[string]ChannelRecord{},
		calls:    map[string]int{},
	}
}

func (m *mockDirectoryClient) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

func (m *mockDirectoryClient) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockDirectoryClient) WhoAmI(ctx context.Context) (AuthInfo, error) {
	m.record("auth.test")
	if m.authErr != nil {
		return AuthInfo{}, m.authErr
	}
	return m.auth, nil
}

func (m *mockDirectoryClient) GetUserByID(ctx context.Context, id string) (UserRecord, error) {
	m.record("users.info")
	if m.failAll != nil {
		return UserRecord{}, m.failAll
	}
	rec, ok := m.users[id]
	if !ok {
		return UserRecord{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (m *mockDirectoryClient) ListUsers(ctx context.Context) ([]UserRecord, error) {
	m.record("users.list")
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.userList, nil
}

func (m *mockDirectoryClient) ListIMChannels(ctx context.Context) ([]ChannelRecord, error) {
	m.record("im.list")
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.imChannels, nil
}

func (m *mockDirectoryClient) ListGroups(ctx context.Context) ([]ChannelRecord, error) {
	m.record("groups.list")
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.groups, nil
}

func (m *mockDirectoryClient) GetChannelInfo(ctx context.Context, id string) (ChannelRecord, error) {
	m.record("channels.info")
	if m.failAll != nil {
		return ChannelRecord{}, m.failAll
	}
	rec, ok := m.channels[id]
	if !ok {
		return ChannelRecord{}, fmt.Errorf("channel %q: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (m *mockDirectoryClient) MarkRead(ctx context.Context, kind ChannelKind, channel, ts string) error {
	m.record("mark")
	m.mu.Lock()
	m.marked = append(m.marked, markCall{kind: kind, channel: channel, ts: ts})
	m.mu.Unlock()
	return m.failAll
}

func (m *mockDirectoryClient) JoinChannel(ctx context.Context, name string) error {
	m.record("join")
	m.mu.Lock()
	m.joined = append(m.joined, name)
	m.mu.Unlock()
	return m.failAll
}

func (m *mockDirectoryClient) OpenGroup(ctx context.Context, channel string) error {
	m.record("open")
	m.mu.Lock()
	m.opened = append(m.opened, channel)
	m.mu.Unlock()
	return m.failAll
}

func (m *mockDirectoryClient) PostMessage(ctx context.Context, channel, text string) error {
	m.record("post")
	if m.failAll != nil {
		return m.failAll
	}
	m.mu.Lock()
	m.posted = append(m.posted, postCall{channel: channel, text: text})
	m.mu.Unlock()
	return nil
}

// mockDispatcher records dispatched and resent messages
type mockDispatcher struct {
	dispatched []*Message
	resent     []*Message
}

func (m *mockDispatcher) Dispatch(msg *Message) {
	m.dispatched = append(m.dispatched, msg)
}

func (m *mockDispatcher) Resend(msg *Message) {
	m.resent = append(m.resent, msg)
}

// mockTransport records registered callbacks and sent messages
type mockTransport struct {
	messageHandler func(InboundEvent)
	errorHandler   func(error)
	started        bool
	sent           []postCall
}

func (m *mockTransport) OnMessageEvent(handler func(InboundEvent)) {
	m.messageHandler = handler
}

func (m *mockTransport) OnErrorEvent(handler func(error)) {
	m.errorHandler = handler
}

func (m *mockTransport) Start(ctx context.Context) error {
	m.started = true
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockTransport) Send(channel, text string) error {
	m.sent = append(m.sent, postCall{channel: channel, text: text})
	return nil
}

// testClock is a manually advanced clock
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
