package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/zostay/slackchat/internal/cache"
)

// Resolver resolves opaque platform IDs and names into Identity and channel
// records. Every successful remote payload is cached for a short TTL to
// avoid hammering the rate-limited directory API; Identity values are built
// fresh on every call so IsSelf is always computed, never cached.
type Resolver struct {
	client DirectoryClient
	selfID string

	users     *cache.Cache[UserRecord]
	userList  *cache.Cache[[]UserRecord]
	imList    *cache.Cache[[]ChannelRecord]
	groupList *cache.Cache[[]ChannelRecord]
	channels  *cache.Cache[ChannelRecord]
}

// NewResolver creates a Resolver for the session identified by selfID.
func NewResolver(client DirectoryClient, selfID string, ttl time.Duration) *Resolver {
	return &Resolver{
		client:    client,
		selfID:    selfID,
		users:     cache.New[UserRecord](ttl),
		userList:  cache.New[[]UserRecord](ttl),
		imList:    cache.New[[]ChannelRecord](ttl),
		groupList: cache.New[[]ChannelRecord](ttl),
		channels:  cache.New[ChannelRecord](ttl),
	}
}

// User resolves a user by ID (users.info, cached per ID) or by display name
// (linear scan over the cached users.list).
func (r *Resolver) User(ctx context.Context, by LookupBy, value string) (*Identity, error) {
	switch by {
	case ByID:
		rec, err := r.users.GetOrCompute("users.info:"+value, func() (UserRecord, error) {
			return r.client.GetUserByID(ctx, value)
		})
		if err != nil {
			return nil, fmt.Errorf("resolve user %q: %w", value, err)
		}
		return r.identity(rec), nil

	case ByName:
		list, err := r.userList.GetOrCompute("users.list", func() ([]UserRecord, error) {
			return r.client.ListUsers(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("resolve user %q: %w", value, err)
		}
		for _, rec := range list {
			if rec.Name == value {
				return r.identity(rec), nil
			}
		}
		return nil, fmt.Errorf("user %q: %w", value, ErrNotFound)

	default:
		return nil, fmt.Errorf("user lookup by %q: %w", by, ErrInvalidArgument)
	}
}

// Self resolves the session's own Identity.
func (r *Resolver) Self(ctx context.Context) (*Identity, error) {
	return r.User(ctx, ByID, r.selfID)
}

// UserChannel resolves the IM channel for a user (by the IM's peer user ID)
// or by the IM channel's own ID, scanning the cached IM-channel list.
func (r *Resolver) UserChannel(ctx context.Context, by LookupBy, value string) (string, error) {
	if by != ByUser && by != ByID {
		return "", fmt.Errorf("IM channel lookup by %q: %w", by, ErrInvalidArgument)
	}

	list, err := r.imList.GetOrCompute("im.list", func() ([]ChannelRecord, error) {
		return r.client.ListIMChannels(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("resolve IM channel %q: %w", value, err)
	}

	for _, rec := range list {
		if (by == ByUser && rec.UserID == value) || (by == ByID && rec.ID == value) {
			return rec.ID, nil
		}
	}
	return "", fmt.Errorf("IM channel %q: %w", value, ErrNotFound)
}

// Channel resolves a group or team channel by ID. The channel kind decides
// the lookup path: private groups scan the cached group list, team channels
// hit channels.info (cached per ID). IM and unknown prefixes are rejected.
func (r *Resolver) Channel(ctx context.Context, by LookupBy, value string) (string, error) {
	if by != ByID {
		return "", fmt.Errorf("channel lookup by %q: %w", by, ErrInvalidArgument)
	}

	switch KindOf(value) {
	case KindGroup:
		list, err := r.groupList.GetOrCompute("groups.list", func() ([]ChannelRecord, error) {
			return r.client.ListGroups(ctx)
		})
		if err != nil {
			return "", fmt.Errorf("resolve group %q: %w", value, err)
		}
		for _, rec := range list {
			if rec.ID == value {
				return rec.ID, nil
			}
		}
		return "", fmt.Errorf("group %q: %w", value, ErrNotFound)

	case KindTeam:
		rec, err := r.channels.GetOrCompute("channels.info:"+value, func() (ChannelRecord, error) {
			return r.client.GetChannelInfo(ctx, value)
		})
		if err != nil {
			return "", fmt.Errorf("resolve channel %q: %w", value, err)
		}
		return rec.ID, nil

	default:
		return "", fmt.Errorf("unknown group type %q: %w", value, ErrInvalidArgument)
	}
}

// JoinOrOpen makes the session a member of the referenced conversation:
// private groups are opened (a no-op if already open), team channels are
// joined by name. Mutating call, never cached.
func (r *Resolver) JoinOrOpen(ctx context.Context, ref string) error {
	switch KindOf(ref) {
	case KindGroup:
		if err := r.client.OpenGroup(ctx, ref); err != nil {
			return fmt.Errorf("open group %q: %w", ref, err)
		}
		return nil

	case KindTeam:
		rec, err := r.channels.GetOrCompute("channels.info:"+ref, func() (ChannelRecord, error) {
			return r.client.GetChannelInfo(ctx, ref)
		})
		if err != nil {
			return fmt.Errorf("resolve channel %q: %w", ref, err)
		}
		if err := r.client.JoinChannel(ctx, rec.Name); err != nil {
			return fmt.Errorf("join channel %q: %w", rec.Name, err)
		}
		return nil

	default:
		return fmt.Errorf("unknown group type %q: %w", ref, ErrInvalidArgument)
	}
}

func (r *Resolver) identity(rec UserRecord) *Identity {
	return &Identity{
		Username: rec.ID,
		Nickname: rec.Name,
		IsSelf:   rec.ID == r.selfID,
	}
}
