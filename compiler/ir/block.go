package ir

import "tlog.app/go/errors"

type (
	// Block is a basic block. Instructions are added until the block
	// is finalized, which writes it to the image.
	Block struct {
		Handle

		code  []Instr
		final bool
	}
)

func (b *Block) Add(in Instr) error {
	if b.final {
		return errors.Wrap(ErrFinalized, "add %v to %v", in.Op, b.Handle)
	}

	b.code = append(b.code, in)

	return nil
}

func (b *Block) Finalize(img *Image) error {
	if b.final {
		return errors.Wrap(ErrFinalized, "%v", b.Handle)
	}

	b.final = true

	img.appendBlock(b)

	return nil
}

func (b *Block) Finalized() bool { return b.final }

// Last returns the last instruction added or a zero Instr.
func (b *Block) Last() Instr {
	if len(b.code) == 0 {
		return Instr{}
	}

	return b.code[len(b.code)-1]
}
