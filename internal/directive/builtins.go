package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-lit2html/internal/dateutil"
)

type builtin func(in *Interp, args []Value) (Value, error)

// builtins are the only callables a directive can reach.
var builtins = map[string]builtin{
	"str":     builtinStr,
	"int":     builtinInt,
	"bool":    builtinBool,
	"len":     builtinLen,
	"upper":   stringFunc(strings.ToUpper),
	"lower":   stringFunc(strings.ToLower),
	"title":   stringFunc(cases.Title(language.Und).String),
	"date":    builtinDate,
	"env":     builtinEnv,
	"defined": builtinDefined,
	"print":   builtinPrint,
}

func arity(args []Value, lo, hi int) error {
	switch {
	case len(args) < lo && lo == hi:
		return fmt.Errorf("takes exactly %d argument(s) (%d given)", lo, len(args))
	case len(args) < lo:
		return fmt.Errorf("takes at least %d argument(s) (%d given)", lo, len(args))
	case len(args) > hi:
		return fmt.Errorf("takes at most %d argument(s) (%d given)", hi, len(args))
	}
	return nil
}

func stringArg(v Value) (string, error) {
	if v.Kind() != KindString {
		return "", fmt.Errorf("argument must be str, not %s", v.Kind())
	}
	return v.s, nil
}

func builtinStr(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 0, 1); err != nil {
		return Value{}, err
	}
	if len(args) == 0 {
		return String(""), nil
	}
	return String(args[0].String()), nil
}

func builtinInt(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 0, 1); err != nil {
		return Value{}, err
	}
	if len(args) == 0 {
		return Int(0), nil
	}
	v := args[0]
	if n, ok := asInt(v); ok {
		return Int(n), nil
	}
	if v.Kind() != KindString {
		return Value{}, fmt.Errorf("argument must be a string or a number, not '%s'", v.Kind())
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, errors.New("integer out of range")
		}
		return Value{}, fmt.Errorf("invalid literal with base 10: %s", v.Repr())
	}
	return Int(n), nil
}

func builtinBool(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 0, 1); err != nil {
		return Value{}, err
	}
	if len(args) == 0 {
		return Bool(false), nil
	}
	return Bool(args[0].Truthy()), nil
}

func builtinLen(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, 1); err != nil {
		return Value{}, err
	}
	s, err := stringArg(args[0])
	if err != nil {
		return Value{}, err
	}
	n, err := safecast.Conv[int64](utf8.RuneCountInString(s))
	if err != nil {
		return Value{}, err
	}
	return Int(n), nil
}

func stringFunc(fn func(string) string) builtin {
	return func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Value{}, err
		}
		s, err := stringArg(args[0])
		if err != nil {
			return Value{}, err
		}
		return String(fn(s)), nil
	}
}

// builtinDate formats the interpreter clock. The optional argument is a
// dateutil format or preset name.
func builtinDate(in *Interp, args []Value) (Value, error) {
	if err := arity(args, 0, 1); err != nil {
		return Value{}, err
	}
	format := dateutil.DefaultDateFormat
	if len(args) == 1 {
		s, err := stringArg(args[0])
		if err != nil {
			return Value{}, err
		}
		format = s
	}
	out, err := dateutil.Format(in.now(), format)
	if err != nil {
		return Value{}, err
	}
	return String(out), nil
}

func builtinEnv(in *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, 2); err != nil {
		return Value{}, err
	}
	name, err := stringArg(args[0])
	if err != nil {
		return Value{}, err
	}
	if v, ok := in.getenv(name); ok {
		return String(v), nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return String(""), nil
}

func builtinDefined(in *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, 1); err != nil {
		return Value{}, err
	}
	name, err := stringArg(args[0])
	if err != nil {
		return Value{}, err
	}
	_, ok := in.Params[name]
	return Bool(ok), nil
}

func builtinPrint(in *Interp, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	if _, err := fmt.Fprintln(in.stdout(), strings.Join(parts, " ")); err != nil {
		return Value{}, err
	}
	return None(), nil
}
