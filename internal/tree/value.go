package tree

// Value is a sealed interface over the JSON value kinds the translator
// understands. Only String, Literal, Array and Object implement it.
type Value interface {
	value()
}

// String is a text scalar, the unit of translation.
type String string

func (String) value() {}

// Literal is any non-string scalar (number, boolean or null), carried as
// its exact source bytes so that re-encoding cannot change its spelling.
type Literal []byte

func (Literal) value() {}

// Array is an ordered list of values.
type Array []Value

func (Array) value() {}

// Field is one key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a JSON object with insertion order preserved.
type Object []Field

func (Object) value() {}

// Null, True and False are the fixed non-numeric literals.
var (
	Null  = Literal("null")
	True  = Literal("true")
	False = Literal("false")
)

// Number builds a numeric literal from its source spelling.
func Number(s string) Literal {
	return Literal(s)
}

// Get returns the value for key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// Equal reports whether two values have identical shape and content,
// including object key order and the exact spelling of literals.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Literal:
		bv, ok := b.(Literal)
		return ok && string(av) == string(bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Key != bv[i].Key || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
