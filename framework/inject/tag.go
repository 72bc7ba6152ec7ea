package inject

// Tag is a typed name for a dependency. The type parameter records what is
// stored under the tag; it is checked when the value is read back.
//
// Tags are meant to be package-level variables with unique names:
//
//	var DatabaseTag = inject.NewTag[*gorm.DB]("Database")
//
//	db, err := inject.GetTag(ctx, i, DatabaseTag)
type Tag[T any] struct {
	name string
}

// NewTag creates a Tag for values of type T.
func NewTag[T any](name string) *Tag[T] {
	return &Tag[T]{name: name}
}

// Name returns the tag string.
func (t *Tag[T]) Name() string { return t.name }

// Key returns the tag-keyed Key for the Tag.
func (t *Tag[T]) Key() Key { return TagKey[T](t.name) }

func (t *Tag[T]) String() string { return "Tag(" + t.name + ")" }
