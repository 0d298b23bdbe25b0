package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandles(t *testing.T) {
	s := NewSession()

	b0 := s.NewBlock()
	f1 := s.NewFunc(nil, b0)
	b2 := s.NewBlock()

	assert.Equal(t, "block_0", b0.String())
	assert.Equal(t, "fun_1", f1.String())
	assert.Equal(t, "block_2", b2.String())
}

func TestBlockFinalize(t *testing.T) {
	s := NewSession()
	img := NewImage()

	b := s.NewBlock()

	require.NoError(t, b.Add(Push(Num("1"))))
	require.NoError(t, b.Add(Op("ret")))
	require.NoError(t, b.Finalize(img))

	assert.True(t, b.Finalized())
	assert.Equal(t, Op("ret"), b.Last())

	assert.ErrorIs(t, b.Finalize(img), ErrFinalized)
	assert.ErrorIs(t, b.Add(Pop()), ErrFinalized)

	assert.Equal(t, 1, img.Blocks)
	assert.Equal(t, Header+`block_0 = {
  instrs: [
    { op:'push', val:1 },
    { op:'ret' },
  ]
};

`, string(img.Bytes()))
}

func TestFuncSlots(t *testing.T) {
	s := NewSession()
	f := s.NewFunc([]string{"a", "b"}, s.NewBlock())

	assert.Equal(t, 3, f.NumLocals())

	slot, err := f.DeclareLocal("x")
	require.NoError(t, err)
	assert.Equal(t, 3, slot)

	slot, err = f.DeclareLocal("y")
	require.NoError(t, err)
	assert.Equal(t, 4, slot)

	assert.Equal(t, 5, f.NumLocals())

	_, err = f.DeclareLocal("x")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = f.DeclareLocal("a")
	assert.ErrorIs(t, err, ErrDuplicate)

	idx, ok := f.Param("b")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = f.Param("x")
	assert.False(t, ok)
}

func TestFuncGlobals(t *testing.T) {
	s := NewSession()
	f := s.NewFunc(nil, s.NewBlock())

	require.NoError(t, f.DeclareGlobal("g"))
	assert.ErrorIs(t, f.DeclareGlobal("g"), ErrDuplicate)

	slot, ok := f.Local("g")
	assert.True(t, ok)
	assert.Equal(t, GlobalSlot, slot)

	assert.Equal(t, 1, f.NumLocals())
	assert.True(t, s.IsGlobal("g"))
	assert.False(t, s.IsGlobal("h"))
	assert.Equal(t, []string{"g"}, s.Globals())
}

func TestFuncFinalize(t *testing.T) {
	s := NewSession()
	img := NewImage()

	entry := s.NewBlock()
	f := s.NewFunc([]string{"x", "y"}, entry)

	require.NoError(t, entry.Add(Op("ret")))
	require.NoError(t, entry.Finalize(img))
	require.NoError(t, f.Finalize(img))

	assert.ErrorIs(t, f.Finalize(img), ErrFinalized)

	_, err := f.DeclareLocal("z")
	assert.ErrorIs(t, err, ErrFinalized)

	assert.Contains(t, string(img.Bytes()), `fun_1 = {
  entry:@block_0,
  params:['x', 'y'],
  num_locals:3,
};

`)

	assert.NoError(t, img.Check())
}

func TestImageCheck(t *testing.T) {
	s := NewSession()
	img := NewImage()

	b := s.NewBlock()
	next := s.NewBlock()

	require.NoError(t, b.Add(Op("jump", A("to", next.Handle))))
	require.NoError(t, b.Finalize(img))

	assert.ErrorIs(t, img.Check(), ErrDanglingRef)

	require.NoError(t, next.Add(Op("ret")))
	require.NoError(t, next.Finalize(img))

	assert.NoError(t, img.Check())
}

func TestImageObjects(t *testing.T) {
	img := NewImage()

	img.Object(ExportsObj, A("init", Handle{Kind: KindFunc, ID: 1}))
	img.Object(GlobalObj, A("exports", ExportsObj))
	img.Result(ExportsObj)

	assert.Equal(t, `#zeta-image

exports_obj = { init: @fun_1 };

global_obj = { exports: @exports_obj };

@exports_obj;
`, string(img.Bytes()))

	assert.ErrorIs(t, img.Check(), ErrDanglingRef)
}

func TestInstrString(t *testing.T) {
	for _, tc := range []struct {
		in  Instr
		exp string
	}{
		{Push(Str("it's \\ ok\n")), `{ op:'push', val:'it\'s \\ ok\n' }`},
		{Push(True), `{ op:'push', val:$true }`},
		{Push(GlobalObj), `{ op:'push', val:@global_obj }`},
		{Dup(2), `{ op:'dup', idx:2 }`},
		{SetLocal(3), `{ op:'set_local', idx:3 }`},
		{HasTag("string"), `{ op:'has_tag', tag:'string' }`},
		{Op("call", A("ret_to", Handle{Kind: KindBlock, ID: 7}), A("num_args", Int(2))), `{ op:'call', ret_to:@block_7, num_args:2 }`},
	} {
		assert.Equal(t, tc.exp, tc.in.String())
	}

	in := Op("if_true", A("then", Handle{Kind: KindBlock, ID: 1}), A("else", Handle{Kind: KindBlock, ID: 2}))
	assert.Equal(t, Handle{Kind: KindBlock, ID: 2}, in.Arg("else"))
	assert.Nil(t, in.Arg("to"))
}
