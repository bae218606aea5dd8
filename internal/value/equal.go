package value

// Equal implements the deep, type-strict equality of spec.md §3.1:
// Integer/Float mix by promoting to Float; Objects compare by key set and
// per-key value; arrays/tuples compare by length and element-wise equality;
// Closures, Classes, Ranges, and Builtins compare by identity (shared
// handle); Strings compare by content.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		_, aNil := a.(Nil)
		_, bNil := b.(Nil)
		return (a == nil || aNil) && (b == nil || bNil)
	}

	switch av := a.(type) {
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return float64(av) == float64(bv)
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Int:
			return float64(av) == float64(bv)
		case Float:
			return av == bv
		}
		return false
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Byte:
		bv, ok := b.(Byte)
		return ok && av == bv
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case Atom:
		bv, ok := b.(Atom)
		return ok && av == bv
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			ov, exists := bv.Fields[k]
			if !exists || !Equal(v, ov) {
				return false
			}
		}
		return true
	case *Struct:
		bv, ok := b.(*Struct)
		if !ok || av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			ov, exists := bv.Fields[k]
			if !exists || !Equal(v, ov) {
				return false
			}
		}
		return true
	case *EnumVariant:
		bv, ok := b.(*EnumVariant)
		if !ok || av.VariantName != bv.VariantName || av.EnumName != bv.EnumName || len(av.Payload) != len(bv.Payload) {
			return false
		}
		for i := range av.Payload {
			if !Equal(av.Payload[i], bv.Payload[i]) {
				return false
			}
		}
		return true
	case *ObjectMut:
		bv, ok := b.(*ObjectMut)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Range:
		bv, ok := b.(*Range)
		return ok && av == bv
	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv
	case *BuiltinFunction:
		bv, ok := b.(*BuiltinFunction)
		return ok && av.Name == bv.Name
	case *DataFrame:
		bv, ok := b.(*DataFrame)
		return ok && av == bv
	}
	return false
}
