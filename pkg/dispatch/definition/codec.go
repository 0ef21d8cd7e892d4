package definition

import (
	"bytes"
	"encoding/gob"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

var _ core.Codec = GobCodec{}

// GobCodec is the default core.Codec implementation. The wire codec is
// an external collaborator out of scope for this module (spec.md §1):
// a real deployment swaps this out for whatever framing the peer
// transport's wire format actually needs. encoding/gob is used here,
// deliberately left on the standard library rather than grounded on a
// third-party serializer, because nothing in the example pack ships a
// length-prefixed record codec this module's own tests could exercise
// without inventing a wire format wholesale; see DESIGN.md.
type GobCodec struct{}

func init() {
	gob.Register(&types.CheckResultBody{})
	gob.Register(&types.NotificationBody{})
	gob.Register(&types.ContactNotificationMethodBody{})
	gob.Register(&types.CommentBody{})
	gob.Register(&types.DowntimeBody{})
	gob.Register(&types.CommandBody{})
	gob.Register(struct{}{})
}

// record is the length-prefixed envelope GobCodec produces: the header
// travels with every event, body is whatever kind-specific payload the
// hook attached.
type record struct {
	Header types.Header
	Body   any
}

func (GobCodec) Encode(ev *types.Event, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(record{Header: ev.Header, Body: body}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode; exposed for collaborators on the receiving
// end of the IPC/transport boundary (not used by the dispatch core
// itself, which only ever encodes).
func Decode(raw []byte) (*types.Event, any, error) {
	var rec record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, nil, err
	}
	return &types.Event{Header: rec.Header}, rec.Body, nil
}
