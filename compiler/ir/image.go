package ir

import (
	"tlog.app/go/errors"

	"github.com/slowlang/espresso/compiler/set"
)

type (
	// Image accumulates serialized records in the order they are written.
	Image struct {
		b []byte

		final set.Bitmap
		refs  set.Bitmap

		Blocks int
		Funcs  int
	}
)

const Header = "#zeta-image\n\n"

func NewImage() *Image {
	return &Image{
		b:     []byte(Header),
		final: set.MakeBitmap(0),
		refs:  set.MakeBitmap(0),
	}
}

func (img *Image) Bytes() []byte { return img.b }

// Object writes a named object record: name = { key: val, ... };
func (img *Image) Object(name Name, fields ...Arg) {
	img.b = append(img.b, name...)
	img.b = append(img.b, " = {"...)

	for i, f := range fields {
		if i != 0 {
			img.b = append(img.b, ',')
		}

		img.b = append(img.b, ' ')
		img.b = append(img.b, f.Key...)
		img.b = append(img.b, ": "...)
		img.b = img.appendValue(img.b, f.Val)
	}

	img.b = append(img.b, " };\n\n"...)
}

// Result writes the value the unit evaluates to.
func (img *Image) Result(v Value) {
	img.b = img.appendValue(img.b, v)
	img.b = append(img.b, ";\n"...)
}

// Check verifies every referenced block or function was written to the image.
func (img *Image) Check() error {
	missing := img.refs.Diff(&img.final)

	if id := missing.First(); id >= 0 {
		return errors.Wrap(ErrDanglingRef, "id %d (%d missing)", id, missing.Size())
	}

	return nil
}

func (img *Image) appendBlock(blk *Block) {
	img.final.Set(blk.ID)
	img.Blocks++

	b := img.b

	b = blk.appendName(b)
	b = append(b, " = {\n  instrs: [\n"...)

	for _, in := range blk.code {
		b = append(b, "    "...)
		b = in.appendTo(b, img.appendValue)
		b = append(b, ",\n"...)
	}

	b = append(b, "  ]\n};\n\n"...)

	img.b = b
}

func (img *Image) appendFunc(f *Func) {
	img.final.Set(f.ID)
	img.Funcs++

	params := make(List, len(f.Params))
	for i, p := range f.Params {
		params[i] = Str(p)
	}

	b := img.b

	b = f.appendName(b)
	b = append(b, " = {\n  entry:"...)
	b = img.appendValue(b, f.entry.Handle)
	b = append(b, ",\n  params:"...)
	b = params.AppendValue(b)
	b = append(b, ",\n  num_locals:"...)
	b = Int(f.nextLocal).AppendValue(b)
	b = append(b, ",\n};\n\n"...)

	img.b = b
}

func (img *Image) appendValue(b []byte, v Value) []byte {
	if h, ok := v.(Handle); ok {
		img.refs.Set(h.ID)
	}

	return v.AppendValue(b)
}
