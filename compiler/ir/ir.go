/*
Package ir builds the control-flow graph of a compilation unit
and serializes it into the textual image loaded by the VM.

Blocks and functions are written to the Image at the moment they are finalized,
so the image lists them in finalization order.
Every identifier is issued by a Session, one Session per compilation.
*/
package ir

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Handle names a block or function record in the image.
	Handle struct {
		Kind string
		ID   int
	}
)

const (
	KindBlock = "block"
	KindFunc  = "fun"
)

var (
	ErrFinalized   = errors.New("already finalized")
	ErrDuplicate   = errors.New("duplicate declaration")
	ErrDanglingRef = errors.New("reference to an unfinalized record")
)

func (h Handle) String() string {
	return string(h.appendName(nil))
}

func (h Handle) AppendValue(b []byte) []byte {
	b = append(b, '@')
	return h.appendName(b)
}

func (h Handle) appendName(b []byte) []byte {
	return hfmt.Appendf(b, "%s_%d", h.Kind, h.ID)
}

func (h Handle) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "%s_%d", h.Kind, h.ID)
}
