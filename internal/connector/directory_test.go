package connector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(client *mockDirectoryClient) *Resolver {
	return NewResolver(client, "U0", time.Minute)
}

func TestUser_ByID_ResolvesAndCaches(t *testing.T) {
	client := newMockDirectoryClient()
	client.users["U1"] = UserRecord{ID: "U1", Name: "alice"}
	r := newTestResolver(client)
	ctx := context.Background()

	id, err := r.User(ctx, ByID, "U1")
	assert.NoError(t, err)
	assert.Equal(t, "U1", id.Username)
	assert.Equal(t, "alice", id.Nickname)
	assert.False(t, id.IsSelf)

	// Second lookup is served from cache
	_, err = r.User(ctx, ByID, "U1")
	assert.NoError(t, err)
	assert.Equal(t, 1, client.callCount("users.info"))
}

func TestUser_ByName_ScansUserList(t *testing.T) {
	client := newMockDirectoryClient()
	client.userList = []UserRecord{
		{ID: "U1", Name: "alice"},
		{ID: "U2", Name: "bob"},
	}
	r := newTestResolver(client)
	ctx := context.Background()

	id, err := r.User(ctx, ByName, "bob")
	assert.NoError(t, err)
	assert.Equal(t, "U2", id.Username)

	// Both lookups share the single cached users.list payload
	_, err = r.User(ctx, ByName, "alice")
	assert.NoError(t, err)
	assert.Equal(t, 1, client.callCount("users.list"))
}

func TestUser_ByName_NoMatch_ReturnsNotFound(t *testing.T) {
	client := newMockDirectoryClient()
	client.userList = []UserRecord{{ID: "U1", Name: "alice"}}
	r := newTestResolver(client)

	_, err := r.User(context.Background(), ByName, "mallory")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUser_UnknownLookupMode_ReturnsInvalidArgument(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())

	_, err := r.User(context.Background(), LookupBy("email"), "x@example.com")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUser_RemoteFailure_Propagates(t *testing.T) {
	client := newMockDirectoryClient()
	client.failAll = ErrRemoteCall
	r := newTestResolver(client)

	_, err := r.User(context.Background(), ByID, "U1")
	assert.ErrorIs(t, err, ErrRemoteCall)
}

func TestSelf_IsSelfComputed(t *testing.T) {
	client := newMockDirectoryClient()
	r := newTestResolver(client)

	self, err := r.Self(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "U0", self.Username)
	assert.True(t, self.IsSelf)
}

func TestUserChannel_ByUser_FindsIM(t *testing.T) {
	client := newMockDirectoryClient()
	client.imChannels = []ChannelRecord{
		{ID: "D1", UserID: "U1"},
		{ID: "D2", UserID: "U2"},
	}
	r := newTestResolver(client)

	ref, err := r.UserChannel(context.Background(), ByUser, "U2")
	assert.NoError(t, err)
	assert.Equal(t, "D2", ref)
}

func TestUserChannel_ByID_FindsIM(t *testing.T) {
	client := newMockDirectoryClient()
	client.imChannels = []ChannelRecord{{ID: "D1", UserID: "U1"}}
	r := newTestResolver(client)

	ref, err := r.UserChannel(context.Background(), ByID, "D1")
	assert.NoError(t, err)
	assert.Equal(t, "D1", ref)
}

func TestUserChannel_NoMatch_ReturnsNotFound(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())

	_, err := r.UserChannel(context.Background(), ByUser, "U9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserChannel_ByName_ReturnsInvalidArgument(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())

	_, err := r.UserChannel(context.Background(), ByName, "alice")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestChannel_GroupPrefix_ScansGroupList(t *testing.T) {
	client := newMockDirectoryClient()
	client.groups = []ChannelRecord{{ID: "G123", Name: "secrets"}}
	r := newTestResolver(client)

	ref, err := r.Channel(context.Background(), ByID, "G123")
	assert.NoError(t, err)
	assert.Equal(t, "G123", ref)
	assert.Equal(t, 1, client.callCount("groups.list"))
	assert.Equal(t, 0, client.callCount("channels.info"))
}

func TestChannel_TeamPrefix_FetchesChannelInfo(t *testing.T) {
	client := newMockDirectoryClient()
	client.channels["C456"] = ChannelRecord{ID: "C456", Name: "general"}
	r := newTestResolver(client)
	ctx := context.Background()

	ref, err := r.Channel(ctx, ByID, "C456")
	assert.NoError(t, err)
	assert.Equal(t, "C456", ref)

	_, err = r.Channel(ctx, ByID, "C456")
	assert.NoError(t, err)
	assert.Equal(t, 1, client.callCount("channels.info"))
	assert.Equal(t, 0, client.callCount("groups.list"))
}

func TestChannel_OtherPrefix_ReturnsInvalidArgument(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())
	ctx := context.Background()

	for _, ref := range []string{"D789", "X1", ""} {
		_, err := r.Channel(ctx, ByID, ref)
		assert.ErrorIs(t, err, ErrInvalidArgument, "ref: %q", ref)
	}
}

func TestChannel_ByName_ReturnsInvalidArgument(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())

	_, err := r.Channel(context.Background(), ByName, "general")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestChannel_MissingGroup_ReturnsNotFound(t *testing.T) {
	client := newMockDirectoryClient()
	client.groups = []ChannelRecord{{ID: "G1", Name: "other"}}
	r := newTestResolver(client)

	_, err := r.Channel(context.Background(), ByID, "G999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinOrOpen_Group_OpensGroup(t *testing.T) {
	client := newMockDirectoryClient()
	r := newTestResolver(client)

	err := r.JoinOrOpen(context.Background(), "G1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"G1"}, client.opened)
	assert.Empty(t, client.joined)
}

func TestJoinOrOpen_TeamChannel_JoinsByName(t *testing.T) {
	client := newMockDirectoryClient()
	client.channels["C1"] = ChannelRecord{ID: "C1", Name: "general"}
	r := newTestResolver(client)

	err := r.JoinOrOpen(context.Background(), "C1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"general"}, client.joined)
	assert.Empty(t, client.opened)
}

func TestJoinOrOpen_OtherPrefix_ReturnsInvalidArgument(t *testing.T) {
	r := newTestResolver(newMockDirectoryClient())

	err := r.JoinOrOpen(context.Background(), "D1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestJoinOrOpen_RemoteFailure_Propagates(t *testing.T) {
	client := newMockDirectoryClient()
	client.failAll = errors.New("is_archived")
	r := newTestResolver(client)

	err := r.JoinOrOpen(context.Background(), "G1")
	assert.Error(t, err)
}
