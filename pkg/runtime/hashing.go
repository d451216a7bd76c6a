package runtime

// HashKey is the comparable identity of a hashable value. Two keys are equal
// exactly when their source values have the same kind and the same contents.
type HashKey struct {
	Kind Kind
	Int  int64
	Str  string
}

// Hashable values can be used as hash keys: integers, booleans and strings.
type Hashable interface {
	Value
	HashKey() HashKey
}

func (v IntegerValue) HashKey() HashKey { return HashKey{Kind: KindInteger, Int: v.Val} }

func (v BoolValue) HashKey() HashKey {
	var n int64
	if v.Val {
		n = 1
	}
	return HashKey{Kind: KindBoolean, Int: n}
}

func (v StringValue) HashKey() HashKey { return HashKey{Kind: KindString, Str: v.Val} }

// AsHashable reports whether v may be used as a hash key.
func AsHashable(v Value) (Hashable, bool) {
	h, ok := v.(Hashable)
	return h, ok
}
