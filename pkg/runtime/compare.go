package runtime

// IsTruthy: false and null are falsy, every other value is truthy,
// including 0, "" and empty collections.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares two values for `==`. Scalars compare by value, arrays and
// hashes structurally, and functions and builtins by identity.
func Equal(left, right Value) bool {
	if left == nil || right == nil {
		return left == right
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case IntegerValue:
		return l.Val == right.(IntegerValue).Val
	case BoolValue:
		return l.Val == right.(BoolValue).Val
	case StringValue:
		return l.Val == right.(StringValue).Val
	case NullValue:
		return true
	case *ArrayValue:
		r := right.(*ArrayValue)
		if len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !Equal(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	case *HashValue:
		r := right.(*HashValue)
		if l.Len() != r.Len() {
			return false
		}
		for hk, pair := range l.pairs {
			other, ok := r.pairs[hk]
			if !ok || !Equal(pair.Value, other.Value) {
				return false
			}
		}
		return true
	case *ReturnValue:
		return Equal(l.Value, right.(*ReturnValue).Value)
	case *ErrorValue:
		return l.Message == right.(*ErrorValue).Message
	default:
		return left == right
	}
}
