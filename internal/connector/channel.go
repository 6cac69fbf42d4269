package connector

// ChannelKind classifies a conversation by the namespace its ID lives in.
// Slack encodes the kind in the ID's first character; deriving the kind
// once here keeps that assumption in a single table.
type ChannelKind int

const (
	KindUnknown ChannelKind = iota
	KindDirect              // D-prefixed IM channel
	KindGroup               // G-prefixed private group
	KindTeam                // C-prefixed team channel
)

// kindByPrefix is the one place the ID-prefix convention is written down.
var kindByPrefix = map[byte]ChannelKind{
	'D': KindDirect,
	'G': KindGroup,
	'C': KindTeam,
}

// KindOf derives the channel kind from a raw channel ID.
func KindOf(id string) ChannelKind {
	if id == "" {
		return KindUnknown
	}
	return kindByPrefix[id[0]]
}

func (k ChannelKind) String() string {
	switch k {
	case KindDirect:
		return "im"
	case KindGroup:
		return "group"
	case KindTeam:
		return "channel"
	default:
		return "unknown"
	}
}
