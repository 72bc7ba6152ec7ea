package inject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/nakago/framework/inject"
)

type widget struct{ name string }

type gadget interface{ Spin() }

func TestKeyOf_SameTypeIsEqual(t *testing.T) {
	assert.True(t, inject.KeyOf[*widget]().Equal(inject.KeyOf[*widget]()))
	assert.False(t, inject.KeyOf[*widget]().Equal(inject.KeyOf[widget]()))
}

func TestKeyOf_InterfaceType(t *testing.T) {
	k := inject.KeyOf[gadget]()
	assert.Equal(t, "inject_test.gadget", k.String())
	assert.False(t, k.IsTag())
}

func TestTagKey_IdentityIsTheTagString(t *testing.T) {
	a := inject.TagKey[string]("shared")
	b := inject.TagKey[int]("shared")
	c := inject.TagKey[string]("other")

	assert.True(t, a.Equal(b), "same tag string must address the same slot")
	assert.False(t, a.Equal(c))
	assert.Equal(t, "string", a.TypeName())
	assert.Equal(t, "int", b.TypeName())
}

func TestKey_TypeAndTagNeverCollide(t *testing.T) {
	assert.False(t, inject.KeyOf[*widget]().Equal(inject.TagKey[*widget]("*inject_test.widget")))
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  inject.Key
		want string
	}{
		{"pointer type", inject.KeyOf[*widget](), "*inject_test.widget"},
		{"builtin", inject.KeyOf[int](), "int"},
		{"tag", inject.TagKey[*widget]("Widget"), "Tag(Widget)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestTag_KeyAndString(t *testing.T) {
	tag := inject.NewTag[*widget]("Widget")

	assert.Equal(t, "Widget", tag.Name())
	assert.Equal(t, "Tag(Widget)", tag.String())
	assert.True(t, tag.Key().IsTag())
	assert.Equal(t, "Widget", tag.Key().Tag())
	assert.True(t, tag.Key().Equal(inject.TagKey[*widget]("Widget")))
}
