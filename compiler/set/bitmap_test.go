package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmap(t *testing.T) {
	s := MakeBitmap(0)

	assert.Equal(t, -1, s.First())
	assert.Equal(t, 0, s.Size())

	for _, i := range []int{3, 64, 200, 3} {
		s.Set(i)
	}

	assert.True(t, s.IsSet(3))
	assert.True(t, s.IsSet(64))
	assert.True(t, s.IsSet(200))
	assert.False(t, s.IsSet(4))
	assert.False(t, s.IsSet(1000))

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, 3, s.First())

	var got []int
	s.Range(func(i int) bool {
		got = append(got, i)
		return true
	})

	assert.Equal(t, []int{3, 64, 200}, got)
}

func TestBitmapDiff(t *testing.T) {
	a := MakeBitmap(0)
	b := MakeBitmap(0)

	for _, i := range []int{1, 2, 70, 300} {
		a.Set(i)
	}

	b.Set(1)
	b.Set(70)

	d := a.Diff(&b)

	assert.Equal(t, 2, d.Size())
	assert.Equal(t, 2, d.First())
	assert.True(t, d.IsSet(300))

	d = b.Diff(&a)
	assert.Equal(t, -1, d.First())
}
