package front

import (
	"context"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/espresso/compiler/ir"
	"github.com/slowlang/espresso/compiler/parse"
)

func TestGenerateExprStmt(t *testing.T) {
	obj, _, err := generate(t, "42;")
	require.NoError(t, err)

	assert.Equal(t, `#zeta-image

exports_obj = { init: @fun_1 };

global_obj = { exports: @exports_obj };

block_0 = {
  instrs: [
    { op:'push', val:42 },
    { op:'pop' },
    { op:'push', val:$true },
    { op:'ret' },
  ]
};

fun_1 = {
  entry:@block_0,
  params:[],
  num_locals:1,
};

@exports_obj;
`, obj)
}

func TestGenerateGlobals(t *testing.T) {
	obj, s, err := generate(t, "let x := 1; x := x + 1; return x;")
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, s.Globals())

	assert.Equal(t, `#zeta-image

exports_obj = { init: @fun_1 };

global_obj = { exports: @exports_obj };

block_0 = {
  instrs: [
    { op:'push', val:@global_obj },
    { op:'push', val:'x' },
    { op:'push', val:1 },
    { op:'set_field' },
    { op:'push', val:@global_obj },
    { op:'push', val:'x' },
    { op:'get_field' },
    { op:'push', val:1 },
    { op:'push', val:@global_obj },
    { op:'push', val:'rt_add' },
    { op:'get_field' },
    { op:'call', ret_to:@block_2, num_args:2 },
  ]
};

block_2 = {
  instrs: [
    { op:'push', val:@global_obj },
    { op:'push', val:'x' },
    { op:'dup', idx:2 },
    { op:'set_field' },
    { op:'pop' },
    { op:'push', val:@global_obj },
    { op:'push', val:'x' },
    { op:'get_field' },
    { op:'ret' },
  ]
};

fun_1 = {
  entry:@block_0,
  params:[],
  num_locals:1,
};

@exports_obj;
`, obj)
}

func TestGenerateFunc(t *testing.T) {
	obj, _, err := generate(t, "fun (x,y) { return x+y; };")
	require.NoError(t, err)

	assert.Contains(t, obj, `block_2 = {
  instrs: [
    { op:'get_local', idx:0 },
    { op:'get_local', idx:1 },
    { op:'push', val:@global_obj },
    { op:'push', val:'rt_add' },
    { op:'get_field' },
    { op:'call', ret_to:@block_4, num_args:2 },
  ]
};

block_4 = {
  instrs: [
    { op:'ret' },
  ]
};

fun_3 = {
  entry:@block_2,
  params:['x', 'y'],
  num_locals:3,
};

block_0 = {
  instrs: [
    { op:'push', val:@fun_3 },
    { op:'pop' },
    { op:'push', val:$true },
    { op:'ret' },
  ]
};
`)
}

func TestGenerateFuncFallThrough(t *testing.T) {
	obj, _, err := generate(t, "let f := fun (p) { let a := 1; let b := a; };")
	require.NoError(t, err)

	assert.Contains(t, obj, `block_2 = {
  instrs: [
    { op:'push', val:1 },
    { op:'set_local', idx:2 },
    { op:'get_local', idx:2 },
    { op:'set_local', idx:3 },
    { op:'push', val:$undef },
    { op:'ret' },
  ]
};

fun_3 = {
  entry:@block_2,
  params:['p'],
  num_locals:4,
};
`)
}

func TestGenerateNestedUsesGlobal(t *testing.T) {
	obj, _, err := generate(t, "let g := 1; let f := fun () { return g; };")
	require.NoError(t, err)

	assert.Contains(t, obj, `block_2 = {
  instrs: [
    { op:'push', val:@global_obj },
    { op:'push', val:'g' },
    { op:'get_field' },
    { op:'ret' },
  ]
};
`)
}

func TestGenerateLogical(t *testing.T) {
	obj, _, err := generate(t, "let a := 1; let b := 2; a or b;")
	require.NoError(t, err)

	assert.Contains(t, obj, `    { op:'dup', idx:0 },
    { op:'if_true', then:@block_3, else:@block_2 },
  ]
};

block_2 = {
  instrs: [
    { op:'pop' },
    { op:'push', val:@global_obj },
    { op:'push', val:'b' },
    { op:'get_field' },
    { op:'jump', to:@block_3 },
  ]
};

block_3 = {
  instrs: [
    { op:'pop' },
    { op:'push', val:$true },
    { op:'ret' },
  ]
};
`)

	obj, _, err = generate(t, "let a := 1; let b := 2; a and b;")
	require.NoError(t, err)

	assert.Contains(t, obj, `{ op:'if_true', then:@block_2, else:@block_3 }`)
	assert.Contains(t, obj, `{ op:'jump', to:@block_3 }`)
}

func TestGenerateIfWithoutElse(t *testing.T) {
	obj, _, err := generate(t, "if (1) 2;")
	require.NoError(t, err)

	assert.Contains(t, obj, `block_0 = {
  instrs: [
    { op:'push', val:1 },
    { op:'if_true', then:@block_2, else:@block_3 },
  ]
};

block_2 = {
  instrs: [
    { op:'push', val:2 },
    { op:'pop' },
    { op:'jump', to:@block_4 },
  ]
};

block_3 = {
  instrs: [
    { op:'jump', to:@block_4 },
  ]
};

block_4 = {
  instrs: [
    { op:'push', val:$true },
    { op:'ret' },
  ]
};
`)
}

func TestGenerateIfBothReturn(t *testing.T) {
	obj, _, err := generate(t, "if (1) return 1; else return 2; 3;")
	require.NoError(t, err)

	assert.NotContains(t, obj, "jump")
	assert.Contains(t, obj, `block_4 = {
  instrs: [
    { op:'push', val:3 },
    { op:'pop' },
    { op:'push', val:$true },
    { op:'ret' },
  ]
};
`)
}

func TestGenerateUnreachable(t *testing.T) {
	obj, _, err := generate(t, "return 1; 2;")
	require.NoError(t, err)

	assert.NotContains(t, obj, "val:2")
}

func TestGenerateLiterals(t *testing.T) {
	obj, _, err := generate(t, `[1, 'a', 2.5f]; ({x: true, y: null}); -1; not false; $nop(1);`)
	require.NoError(t, err)

	assert.Contains(t, obj, `    { op:'push', val:3 },
    { op:'new_array' },
    { op:'dup', idx:0 },
    { op:'push', val:1 },
    { op:'array_push' },
    { op:'dup', idx:0 },
    { op:'push', val:'a' },
    { op:'array_push' },
    { op:'dup', idx:0 },
    { op:'push', val:2.5 },
    { op:'array_push' },
    { op:'pop' },
    { op:'push', val:2 },
    { op:'new_object' },
    { op:'dup', idx:0 },
    { op:'push', val:'x' },
    { op:'push', val:$true },
    { op:'set_field' },
    { op:'dup', idx:0 },
    { op:'push', val:'y' },
    { op:'push', val:$undef },
    { op:'set_field' },
    { op:'pop' },
    { op:'push', val:0 },
    { op:'push', val:1 },
    { op:'push', val:@global_obj },
    { op:'push', val:'rt_sub' },
    { op:'get_field' },
    { op:'call', ret_to:@block_2, num_args:2 },
`)

	assert.Contains(t, obj, `    { op:'push', val:$false },
    { op:'push', val:@global_obj },
    { op:'push', val:'rt_not' },
    { op:'get_field' },
    { op:'call', ret_to:@block_3, num_args:1 },
`)

	assert.Contains(t, obj, `    { op:'push', val:1 },
    { op:'nop' },
    { op:'push', val:$true },
`)
}

func TestGenerateOperators(t *testing.T) {
	for op, name := range map[string]string{
		"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "mod",
		"=": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
	} {
		obj, _, err := generate(t, "1 "+op+" 2;")
		require.NoError(t, err, "op %v", op)

		assert.Contains(t, obj, `    { op:'push', val:1 },
    { op:'push', val:2 },
    { op:'push', val:@global_obj },
    { op:'push', val:'rt_`+name+`' },
`, "op %v", op)
	}
}

func TestGenerateBuiltins(t *testing.T) {
	obj, _, err := generate(t, "print(len([]));")
	require.NoError(t, err)

	assert.Contains(t, obj, `{ op:'push', val:'rt_len' }`)
	assert.Contains(t, obj, `{ op:'push', val:'rt_print' }`)
	assert.Contains(t, obj, `{ op:'call', ret_to:@block_2, num_args:1 }`)
}

func TestGenerateTypeof(t *testing.T) {
	obj, _, err := generate(t, "let a := 1; typeof a = 'int';")
	require.NoError(t, err)

	assert.Contains(t, obj, `    { op:'get_field' },
    { op:'has_tag', tag:'int' },
    { op:'pop' },
`)

	_, _, err = generate(t, "let a := 1; typeof a = 1;")
	assert.ErrorIs(t, err, ErrInvalidOp)

	_, _, err = generate(t, "let a := 1; typeof a;")
	assert.ErrorIs(t, err, ErrInvalidOp)
}

func TestGenerateImport(t *testing.T) {
	obj, s, err := generate(t, "import('lib/a' as a, 'lib/b' as b);")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, s.Globals())

	assert.Contains(t, obj, `block_0 = {
  instrs: [
    { op:'push', val:@global_obj },
    { op:'push', val:'a' },
    { op:'push', val:'lib/a' },
    { op:'import', ret_to:@block_2 },
  ]
};

block_2 = {
  instrs: [
    { op:'set_field' },
    { op:'push', val:@global_obj },
    { op:'push', val:'b' },
    { op:'push', val:'lib/b' },
    { op:'import', ret_to:@block_3 },
  ]
};
`)

	obj, _, err = generate(t, "let f := fun () { import('lib/m' as m); return m; };")
	require.NoError(t, err)

	assert.Contains(t, obj, `    { op:'push', val:'lib/m' },
    { op:'import', ret_to:@block_4 },
  ]
};

block_4 = {
  instrs: [
    { op:'set_local', idx:1 },
    { op:'get_local', idx:1 },
    { op:'ret' },
  ]
};
`)
}

func TestGenerateExport(t *testing.T) {
	obj, _, err := generate(t, "let g := 1; export(g);")
	require.NoError(t, err)

	assert.Contains(t, obj, `    { op:'push', val:@global_obj },
    { op:'push', val:'exports' },
    { op:'get_field' },
    { op:'push', val:'g' },
    { op:'push', val:@global_obj },
    { op:'push', val:'g' },
    { op:'get_field' },
    { op:'set_field' },
`)
}

func TestGenerateErrors(t *testing.T) {
	for _, tc := range []struct {
		src string
		err error
	}{
		{"export(1)", ErrExport},
		{"export('a')", ErrExport},
		{"export(y)", ErrExport},
		{"let f := fun () { export(f); };", ErrExport},

		{"let x := 1; let x := 2;", ir.ErrDuplicate},
		{"fun (x) { let x := 1; };", ir.ErrDuplicate},
		{"fun (x, x) {};", ir.ErrDuplicate},
		{"import('a' as a, 'b' as a);", ir.ErrDuplicate},

		{"fun (x) { x := 1; };", ErrAssignToParam},

		{"y;", ErrUndefined},
		{"y := 1;", ErrUndefined},
		{"let f := fun () { return f2; }; let f2 := 1;", ErrUndefined},
		{"fun () { let a := 1; return fun () { return a; }; };", ErrUndefined},

		{"true := 1;", ErrAssign},
		{"1 := 2;", ErrAssign},
		{"print := 1;", ErrAssign},
		{"let null := 1;", ErrAssign},
	} {
		_, _, err := generate(t, tc.src)
		assert.ErrorIs(t, err, tc.err, "src: %q", tc.src)

		var ge *GenError
		assert.ErrorAs(t, err, &ge, "src: %q", tc.src)
	}
}

func TestGenerateErrorPosition(t *testing.T) {
	_, _, err := generate(t, "let x := 1;\nlet f := fun () {\n  return y;\n};")
	require.Error(t, err)

	var ge *GenError
	require.ErrorAs(t, err, &ge)

	assert.Equal(t, 3, ge.Row)
	assert.Equal(t, 3, ge.Col)
	assert.ErrorIs(t, ge, ErrUndefined)
}

func TestGenerateErrorContext(t *testing.T) {
	_, _, err := generate(t, "let a := 1;\nif (a) {\n  print(1 + y);\n}")
	require.Error(t, err)

	var ge *GenError
	require.ErrorAs(t, err, &ge)

	assert.Equal(t, 3, ge.Row)
	assert.Equal(t, 3, ge.Col)
	assert.ErrorIs(t, err, ErrUndefined)

	assert.Contains(t, err.Error(), "if: then")
	assert.Contains(t, err.Error(), "call args")
	assert.Contains(t, err.Error(), "binop right")
}

func TestGenerateHandles(t *testing.T) {
	obj, _, err := generate(t, `
let a := 1;
let g := null;
let f := fun (x) {
	if (x and a) {
		return g(x - 1) or print(x);
	} else if (not x) {
		import('lib' as lib);
		return lib;
	}

	return [x, {k: x}];
};
g := fun (n) { return f(n); };
export(f, g);
`)
	require.NoError(t, err)

	defs := regexp.MustCompile(`(?m)^(block|fun)_(\d+) = \{`).FindAllStringSubmatch(obj, -1)
	refs := regexp.MustCompile(`@(block|fun)_(\d+)`).FindAllStringSubmatch(obj, -1)

	defined := map[string]int{}
	ids := map[int]string{}

	for _, d := range defs {
		name := d[1] + "_" + d[2]
		defined[name]++

		id, err := strconv.Atoi(d[2])
		require.NoError(t, err)

		prev, ok := ids[id]
		assert.False(t, ok, "id %d used by %v and %v", id, prev, name)
		ids[id] = name
	}

	for name, n := range defined {
		assert.Equal(t, 1, n, "%v defined %d times", name, n)
	}

	for _, r := range refs {
		name := r[1] + "_" + r[2]
		assert.Contains(t, defined, name, "dangling reference")
	}

	for id := range ids {
		assert.True(t, id >= 0 && id < len(ids), "id %d", id)
	}
}

func generate(t *testing.T, src string) (string, *ir.Session, error) {
	t.Helper()

	unit, err := parse.Parse(context.Background(), "test", []byte(src))
	require.NoError(t, err, "src: %q", src)

	s := ir.NewSession()

	obj, err := Generate(context.Background(), s, unit)

	return string(obj), s, err
}
