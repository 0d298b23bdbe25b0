package ir

import (
	"strconv"
)

type (
	// Instr is an instruction record: an operation name and its arguments
	// in the order they are written.
	Instr struct {
		Op   string
		Args []Arg
	}

	Arg struct {
		Key string
		Val Value
	}

	Value interface {
		AppendValue(b []byte) []byte
	}

	// Num is a numeric literal written as is.
	Num string

	// Str is a string written single quoted.
	Str string

	// Const is a VM constant such as $true.
	Const string

	// Name refers to a named object of the image.
	Name string

	Int int

	// List is an array of values.
	List []Value
)

const (
	True  Const = "true"
	False Const = "false"
	Undef Const = "undef"
)

const (
	GlobalObj  Name = "global_obj"
	ExportsObj Name = "exports_obj"
)

func Op(op string, args ...Arg) Instr {
	return Instr{Op: op, Args: args}
}

func A(key string, val Value) Arg {
	return Arg{Key: key, Val: val}
}

func Push(v Value) Instr { return Op("push", A("val", v)) }

func Pop() Instr { return Op("pop") }

func Dup(idx int) Instr { return Op("dup", A("idx", Int(idx))) }

func GetLocal(idx int) Instr { return Op("get_local", A("idx", Int(idx))) }

func SetLocal(idx int) Instr { return Op("set_local", A("idx", Int(idx))) }

func GetField() Instr { return Op("get_field") }

func SetField() Instr { return Op("set_field") }

func NewArray() Instr { return Op("new_array") }

func ArrayPush() Instr { return Op("array_push") }

func NewObject() Instr { return Op("new_object") }

func HasTag(tag string) Instr { return Op("has_tag", A("tag", Str(tag))) }

func (v Num) AppendValue(b []byte) []byte { return append(b, v...) }

func (v Int) AppendValue(b []byte) []byte { return strconv.AppendInt(b, int64(v), 10) }

func (v Const) AppendValue(b []byte) []byte {
	b = append(b, '$')
	return append(b, v...)
}

func (v Name) AppendValue(b []byte) []byte {
	b = append(b, '@')
	return append(b, v...)
}

// AppendValue quotes the string escaping what the VM string reader treats specially.
func (v Str) AppendValue(b []byte) []byte {
	b = append(b, '\'')

	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '\'', '\\':
			b = append(b, '\\', c)
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, c)
		}
	}

	return append(b, '\'')
}

func (l List) AppendValue(b []byte) []byte {
	b = append(b, '[')

	for i, v := range l {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = v.AppendValue(b)
	}

	return append(b, ']')
}

func (in Instr) AppendTo(b []byte) []byte {
	return in.appendTo(b, func(b []byte, v Value) []byte {
		return v.AppendValue(b)
	})
}

func (in Instr) appendTo(b []byte, val func([]byte, Value) []byte) []byte {
	b = append(b, "{ op:"...)
	b = Str(in.Op).AppendValue(b)

	for _, a := range in.Args {
		b = append(b, ", "...)
		b = append(b, a.Key...)
		b = append(b, ':')
		b = val(b, a.Val)
	}

	return append(b, " }"...)
}

func (in Instr) String() string {
	return string(in.AppendTo(nil))
}

// Arg returns the value of the argument with the given key.
func (in Instr) Arg(key string) Value {
	for _, a := range in.Args {
		if a.Key == key {
			return a.Val
		}
	}

	return nil
}
