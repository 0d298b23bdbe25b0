package ir

import "sort"

type (
	// Session holds the state shared by everything compiled in one unit:
	// the handle counter and the registry of global names.
	Session struct {
		next int

		globals map[string]struct{}
	}
)

func NewSession() *Session {
	return &Session{
		globals: make(map[string]struct{}),
	}
}

func (s *Session) NewBlock() *Block {
	return &Block{
		Handle: s.handle(KindBlock),
	}
}

// NewFunc creates a function with the given entry block.
// Slots 0..len(params)-1 hold parameters, slot len(params) is reserved
// and declared locals start right after it.
func (s *Session) NewFunc(params []string, entry *Block) *Func {
	return &Func{
		Handle:    s.handle(KindFunc),
		Params:    params,
		s:         s,
		entry:     entry,
		locals:    make(map[string]int),
		nextLocal: 1 + len(params),
	}
}

// IsGlobal reports whether name was declared at the top level of the unit.
func (s *Session) IsGlobal(name string) bool {
	_, ok := s.globals[name]
	return ok
}

func (s *Session) Globals() []string {
	l := make([]string, 0, len(s.globals))

	for name := range s.globals {
		l = append(l, name)
	}

	sort.Strings(l)

	return l
}

func (s *Session) handle(kind string) Handle {
	h := Handle{Kind: kind, ID: s.next}
	s.next++

	return h
}
