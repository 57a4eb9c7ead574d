package directive

import (
	"io"
	"math"
	"os"
	"strings"
	"time"
)

// MaxStringLength bounds strings built by concatenation and repetition.
const MaxStringLength = 1 << 20

// Interp executes directive text against a parameter store. The zero value
// is usable: Params is allocated on first assignment, print output is
// discarded, the clock is time.Now and the environment is os.LookupEnv.
type Interp struct {
	Params Params
	Types  map[string]Kind // declared parameter kinds
	Stdout io.Writer
	Now    func() time.Time
	Getenv func(string) (string, bool)
}

// Exec runs src against params with the default interpreter settings.
func Exec(src string, params Params) error {
	in := &Interp{Params: params}
	return in.Exec(src)
}

// Exec parses and runs src. Statements run in order and the first failure
// stops execution; assignments made before it remain in Params.
func (in *Interp) Exec(src string) error {
	body, err := parse(src)
	if err != nil {
		return err
	}
	if in.Params == nil {
		in.Params = Params{}
	}
	return in.run(body)
}

func (in *Interp) run(body []stmt) error {
	for _, s := range body {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) exec(s stmt) error {
	switch s := s.(type) {
	case *passStmt:
		return nil

	case *exprStmt:
		_, err := in.eval(s.x)
		return err

	case *assignStmt:
		v, err := in.eval(s.value)
		if err != nil {
			return err
		}
		if s.op == "+=" {
			cur, ok := in.Params[s.name]
			if !ok {
				return errorf(s.ln, "name '%s' is not defined", s.name)
			}
			if v, err = binary(s.ln, "+", cur, v); err != nil {
				return err
			}
		}
		return in.assign(s.ln, s.name, v)

	case *ifStmt:
		for _, c := range s.clauses {
			cond, err := in.eval(c.cond)
			if err != nil {
				return err
			}
			if cond.Truthy() {
				return in.run(c.body)
			}
		}
		return in.run(s.orelse)
	}
	return errorf(s.line(), "unsupported statement")
}

func (in *Interp) assign(line int, name string, v Value) error {
	if v.Kind() == KindNone {
		return errorf(line, "cannot assign None to '%s'", name)
	}
	if want, ok := in.Types[name]; ok && v.Kind() != want {
		return errorf(line, "parameter '%s' must be %s, got %s", name, want, v.Kind())
	}
	in.Params[name] = v
	return nil
}

func (in *Interp) eval(e expr) (Value, error) {
	switch e := e.(type) {
	case *literal:
		return e.v, nil

	case *nameExpr:
		v, ok := in.Params[e.name]
		if !ok {
			return Value{}, errorf(e.ln, "name '%s' is not defined", e.name)
		}
		return v, nil

	case *unaryExpr:
		x, err := in.eval(e.x)
		if err != nil {
			return Value{}, err
		}
		if e.op == "not" {
			return Bool(!x.Truthy()), nil
		}
		n, ok := asInt(x)
		if !ok {
			return Value{}, errorf(e.ln, "bad operand type for unary %s: '%s'", e.op, x.Kind())
		}
		if e.op == "-" {
			if n == math.MinInt64 {
				return Value{}, errorf(e.ln, "integer overflow")
			}
			n = -n
		}
		return Int(n), nil

	case *binaryExpr:
		x, err := in.eval(e.x)
		if err != nil {
			return Value{}, err
		}
		switch e.op {
		case "and":
			if !x.Truthy() {
				return x, nil
			}
			return in.eval(e.y)
		case "or":
			if x.Truthy() {
				return x, nil
			}
			return in.eval(e.y)
		}
		y, err := in.eval(e.y)
		if err != nil {
			return Value{}, err
		}
		return binary(e.ln, e.op, x, y)

	case *compareExpr:
		left, err := in.eval(e.terms[0])
		if err != nil {
			return Value{}, err
		}
		for i, op := range e.ops {
			right, err := in.eval(e.terms[i+1])
			if err != nil {
				return Value{}, err
			}
			ok, err := compare(e.ln, op, left, right)
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return Bool(false), nil
			}
			left = right
		}
		return Bool(true), nil

	case *condExpr:
		cond, err := in.eval(e.cond)
		if err != nil {
			return Value{}, err
		}
		if cond.Truthy() {
			return in.eval(e.then)
		}
		return in.eval(e.els)

	case *callExpr:
		fn, ok := builtins[e.fn]
		if !ok {
			if _, isParam := in.Params[e.fn]; isParam {
				return Value{}, errorf(e.ln, "'%s' object is not callable", in.Params[e.fn].Kind())
			}
			return Value{}, errorf(e.ln, "name '%s' is not defined", e.fn)
		}
		args := make([]Value, len(e.args))
		for i, a := range e.args {
			v, err := in.eval(a)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		v, err := fn(in, args)
		if err != nil {
			return Value{}, errorf(e.ln, "%s(): %v", e.fn, err)
		}
		return v, nil
	}
	return Value{}, errorf(e.line(), "unsupported expression")
}

func (in *Interp) stdout() io.Writer {
	if in.Stdout == nil {
		return io.Discard
	}
	return in.Stdout
}

func (in *Interp) now() time.Time {
	if in.Now == nil {
		return time.Now()
	}
	return in.Now()
}

func (in *Interp) getenv(name string) (string, bool) {
	if in.Getenv == nil {
		return os.LookupEnv(name)
	}
	return in.Getenv(name)
}

// asInt reports the integer value of an int or bool.
func asInt(v Value) (int64, bool) {
	switch v.Kind() {
	case KindInt:
		return v.i, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func binary(line int, op string, x, y Value) (Value, error) {
	if op == "/" {
		return Value{}, errorf(line, "true division is not supported, use //")
	}

	if x.Kind() == KindString && y.Kind() == KindString && op == "+" {
		if len(x.s)+len(y.s) > MaxStringLength {
			return Value{}, errorf(line, "string exceeds %d bytes", MaxStringLength)
		}
		return String(x.s + y.s), nil
	}
	if op == "*" {
		if x.Kind() == KindString {
			if n, ok := asInt(y); ok {
				return repeat(line, x.s, n)
			}
		}
		if y.Kind() == KindString {
			if n, ok := asInt(x); ok {
				return repeat(line, y.s, n)
			}
		}
	}

	a, okA := asInt(x)
	b, okB := asInt(y)
	if !okA || !okB {
		return Value{}, errorf(line, "unsupported operand type(s) for %s: '%s' and '%s'", op, x.Kind(), y.Kind())
	}

	switch op {
	case "+":
		r := a + b
		if (r > a) != (b > 0) {
			return Value{}, errorf(line, "integer overflow")
		}
		return Int(r), nil
	case "-":
		r := a - b
		if (r < a) != (b > 0) {
			return Value{}, errorf(line, "integer overflow")
		}
		return Int(r), nil
	case "*":
		if a == 0 || b == 0 {
			return Int(0), nil
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return Value{}, errorf(line, "integer overflow")
		}
		return Int(r), nil
	case "//", "%":
		if b == 0 {
			return Value{}, errorf(line, "integer division or modulo by zero")
		}
		if a == math.MinInt64 && b == -1 {
			if op == "%" {
				return Int(0), nil
			}
			return Value{}, errorf(line, "integer overflow")
		}
		q, m := a/b, a%b
		// Python rounds the quotient toward negative infinity.
		if m != 0 && (m < 0) != (b < 0) {
			q--
			m += b
		}
		if op == "//" {
			return Int(q), nil
		}
		return Int(m), nil
	}
	return Value{}, errorf(line, "unsupported operator '%s'", op)
}

func repeat(line int, s string, n int64) (Value, error) {
	if n <= 0 || s == "" {
		return String(""), nil
	}
	if n > int64(MaxStringLength/len(s)) {
		return Value{}, errorf(line, "string exceeds %d bytes", MaxStringLength)
	}
	return String(strings.Repeat(s, int(n))), nil
}

func compare(line int, op string, x, y Value) (bool, error) {
	a, okA := asInt(x)
	b, okB := asInt(y)
	numeric := okA && okB

	switch op {
	case "==", "!=":
		eq := x.Equal(y)
		if numeric {
			eq = a == b
		}
		return eq == (op == "=="), nil
	}

	var c int
	switch {
	case numeric:
		c = cmpInt(a, b)
	case x.Kind() == KindString && y.Kind() == KindString:
		c = strings.Compare(x.s, y.s)
	default:
		return false, errorf(line, "'%s' not supported between instances of '%s' and '%s'", op, x.Kind(), y.Kind())
	}

	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
