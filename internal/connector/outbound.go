package connector

import (
	"context"
	"fmt"
)

// Outbound maps a send request onto a concrete channel ID using the same
// resolution machinery (and caches) as the inbound path.
type Outbound struct {
	resolver *Resolver
}

// NewOutbound creates an Outbound resolver.
func NewOutbound(resolver *Resolver) *Outbound {
	return &Outbound{resolver: resolver}
}

// ResolveSendTarget returns the channel ID for a target. A user target goes
// through the IM-channel list; a group target through channel resolution.
// Supplying both or neither is a caller error.
func (o *Outbound) ResolveSendTarget(ctx context.Context, target SendTarget) (string, error) {
	switch {
	case target.To != "" && target.Group != "":
		return "", fmt.Errorf("send target names both a user and a group: %w", ErrInvalidArgument)
	case target.Group != "":
		return o.resolver.Channel(ctx, ByID, target.Group)
	case target.To != "":
		return o.resolver.UserChannel(ctx, ByUser, target.To)
	default:
		return "", fmt.Errorf("send target names neither a user nor a group: %w", ErrInvalidArgument)
	}
}
