package css

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// TypeID derives a stable 64-bit id from the fully qualified name of T.
func TypeID[T any]() uint64 {
	return TypeIDOf(reflect.TypeFor[T]())
}

func TypeIDOf(t reflect.Type) uint64 {
	return xxhash.Sum64String(t.PkgPath() + "." + t.String())
}

// MarkClass is the class token of a type mark: "t-" and the hex type id.
func MarkClass(typeID uint64) string {
	return fmt.Sprintf("t-%x", typeID)
}

// StyleClass is the class token of a registered style: "s-" and the hex rule id.
func StyleClass(id uint64) string {
	return fmt.Sprintf("s-%x", id)
}
