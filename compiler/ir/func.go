package ir

import "tlog.app/go/errors"

type (
	Func struct {
		Handle

		Params []string

		s     *Session
		entry *Block

		locals    map[string]int
		nextLocal int

		final bool
	}
)

// GlobalSlot is the slot of names declared in the unit scope.
// They live in fields of the global object and take no local slot.
const GlobalSlot = -1

// DeclareLocal assigns the next free slot to name.
func (f *Func) DeclareLocal(name string) (slot int, err error) {
	if err = f.checkNew(name); err != nil {
		return 0, err
	}

	slot = f.nextLocal
	f.nextLocal++

	f.locals[name] = slot

	return slot, nil
}

// DeclareGlobal makes name known to f and registers it in the session globals.
func (f *Func) DeclareGlobal(name string) error {
	if err := f.checkNew(name); err != nil {
		return err
	}

	f.locals[name] = GlobalSlot
	f.s.globals[name] = struct{}{}

	return nil
}

// Local returns the slot of a name declared in f.
func (f *Func) Local(name string) (slot int, ok bool) {
	slot, ok = f.locals[name]
	return
}

// Param returns the index of the named parameter.
func (f *Func) Param(name string) (idx int, ok bool) {
	for i, p := range f.Params {
		if p == name {
			return i, true
		}
	}

	return -1, false
}

func (f *Func) NumLocals() int { return f.nextLocal }

func (f *Func) Locals() map[string]int { return f.locals }

// Finalize writes the function record. The entry block is released.
func (f *Func) Finalize(img *Image) error {
	if f.final {
		return errors.Wrap(ErrFinalized, "%v", f.Handle)
	}

	f.final = true

	img.appendFunc(f)

	f.entry = nil

	return nil
}

func (f *Func) checkNew(name string) error {
	if f.final {
		return errors.Wrap(ErrFinalized, "declare %q in %v", name, f.Handle)
	}

	if _, ok := f.Param(name); ok {
		return errors.Wrap(ErrDuplicate, "%q is a parameter", name)
	}

	if _, ok := f.locals[name]; ok {
		return errors.Wrap(ErrDuplicate, "%q", name)
	}

	return nil
}
