package inject

import (
	"reflect"
)

// keyID is the comparable identity of a Key. The display name is not part
// of it, so the same tag always maps to the same slot whatever its type.
type keyID struct {
	tagged bool
	typ    reflect.Type
	tag    string
}

// Key addresses a slot in the Container.
//
// A Key is either type-keyed (identified by the Go type T) or tag-keyed
// (identified by a tag string). The two never compare equal, even when the
// tag was created for the same type:
//
//	inject.KeyOf[*Config]()                 // prints "*app.Config"
//	inject.TagKey[*Config]("AppConfig")     // prints "Tag(AppConfig)"
type Key struct {
	id   keyID
	name string
}

// KeyOf returns the type-keyed Key for T.
func KeyOf[T any]() Key {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return Key{
		id:   keyID{typ: t},
		name: typeName(t),
	}
}

// TagKey returns the tag-keyed Key for tag. T only contributes the type
// name used in diagnostics.
func TagKey[T any](tag string) Key {
	return Key{
		id:   keyID{tagged: true, tag: tag},
		name: typeName(reflect.TypeOf((*T)(nil)).Elem()),
	}
}

// IsTag reports whether the Key is tag-keyed.
func (k Key) IsTag() bool { return k.id.tagged }

// Tag returns the tag string of a tag-keyed Key, or "".
func (k Key) Tag() string { return k.id.tag }

// TypeName returns the name of the type associated with the Key.
func (k Key) TypeName() string { return k.name }

// Equal reports whether both Keys address the same slot.
func (k Key) Equal(other Key) bool { return k.id == other.id }

// String prints the type name for type-keyed Keys and Tag(<tag>) for
// tag-keyed ones. The output is stable and meant for error messages.
func (k Key) String() string {
	if k.id.tagged {
		return "Tag(" + k.id.tag + ")"
	}
	return k.name
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
