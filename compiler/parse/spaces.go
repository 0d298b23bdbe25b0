package parse

type (
	Spaces uint64
)

// SpaceAll is the set of characters SkipSpaces skips.
var SpaceAll = NewSpaces(' ', '\t', '\r', '\n', '\v', '\f')

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Has(c byte) bool {
	return c < 64 && s&(1<<c) != 0
}

// SkipSpaces consumes whitespace and // comments.
func (c *Cursor) SkipSpaces() error {
	for !c.EOF() {
		if SpaceAll.Has(c.Peek()) {
			if _, err := c.Read(); err != nil {
				return err
			}

			continue
		}

		if !c.Match("//") {
			return nil
		}

		for !c.EOF() {
			ch, err := c.Read()
			if err != nil {
				return err
			}

			if ch == '\n' {
				break
			}
		}
	}

	return nil
}

func (c *Cursor) MatchSpaced(s string) (bool, error) {
	if err := c.SkipSpaces(); err != nil {
		return false, err
	}

	return c.Match(s), nil
}

func (c *Cursor) ExpectSpaced(s string) error {
	if err := c.SkipSpaces(); err != nil {
		return err
	}

	return c.Expect(s)
}

// MatchKeyword consumes kw if it's next and isn't a prefix of a longer identifier.
func (c *Cursor) MatchKeyword(kw string) (bool, error) {
	if err := c.SkipSpaces(); err != nil {
		return false, err
	}

	if !c.nextKeyword(kw) {
		return false, nil
	}

	return c.Match(kw), nil
}

func (c *Cursor) nextKeyword(kw string) bool {
	return c.Next(kw) && !isIdentChar(c.PeekAt(len(kw)))
}
