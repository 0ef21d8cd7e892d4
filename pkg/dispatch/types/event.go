// Package types holds the value types shared across the dispatch core:
// events, the node directory, selections and the small per-kind bodies
// a host callback hands to a hook.
package types

// Kind identifies which host callback produced an Event. It mirrors the
// enumerated callback kinds a monitoring host process exposes.
type Kind uint8

const (
	KindHostCheck Kind = iota
	KindServiceCheck
	KindNotification
	KindContactNotificationMethod
	KindComment
	KindDowntime
	KindExternalCommand
	KindProgramStatus
	KindProcess
	KindFlapping
	KindHostStatus
	KindServiceStatus
	KindCtrlPacket
	numKinds
)

// NumKinds is the size of the bitmask accepted by hook registration.
const NumKinds = int(numKinds)

func (k Kind) String() string {
	switch k {
	case KindHostCheck:
		return "host-check"
	case KindServiceCheck:
		return "service-check"
	case KindNotification:
		return "notification"
	case KindContactNotificationMethod:
		return "contact-notification-method"
	case KindComment:
		return "comment"
	case KindDowntime:
		return "downtime"
	case KindExternalCommand:
		return "external-command"
	case KindProgramStatus:
		return "program-status"
	case KindProcess:
		return "process"
	case KindFlapping:
		return "flapping"
	case KindHostStatus:
		return "host-status"
	case KindServiceStatus:
		return "service-status"
	case KindCtrlPacket:
		return "ctrl-packet"
	default:
		return "unknown"
	}
}

// Code is the small header enum whose only semantically-loaded value is
// Nonet, which inhibits network egress for an event that must still
// reach the local IPC channel.
type Code uint8

const (
	CodeNormal Code = iota
	CodeNonet
)

// Header is the fixed part of an Event, filled by a hook before the
// dispatch engine is invoked.
type Header struct {
	Kind      Kind
	Code      Code
	Selection Selection
	Length    int
}

// MarkNonet flags the packet so the dispatch engine never lets it cross
// the network, while still allowing it to reach local IPC.
func (h *Header) MarkNonet() { h.Code = CodeNonet }

// Event is the value record carried from a host callback into the
// dispatch engine. It is created per callback and consumed at dispatch;
// the kind-specific payload travels alongside it, not inside it, so the
// external codec can encode header and body together.
type Event struct {
	Header Header
}

// NewEvent builds an Event for the given kind with the default selection
// used for "normal" traffic (peers and masters); hooks override the
// selection and code as their routing rules require.
func NewEvent(kind Kind) *Event {
	return &Event{Header: Header{Kind: kind, Code: CodeNormal, Selection: SelPeersMasters}}
}
