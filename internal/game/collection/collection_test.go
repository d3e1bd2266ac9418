package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStringList(known ...string) *List[string] {
	db := make(map[string]string, len(known))
	for _, id := range known {
		db[id] = "card:" + id
	}
	return New(func(id string) (string, bool) {
		v, ok := db[id]
		return v, ok
	})
}

func TestAddRemoveContains(t *testing.T) {
	l := newStringList("a", "b")
	l.Add("a")
	l.Add("b")
	l.Add("a")

	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("a"))

	assert.True(t, l.Remove("a"))
	assert.Equal(t, []string{"b", "a"}, l.IDs(), "remove drops the first occurrence only")

	assert.False(t, l.Remove("zz"))
	assert.Equal(t, 2, l.Len())
}

func TestIDsReturnsCopy(t *testing.T) {
	l := newStringList("a")
	l.Add("a")

	ids := l.IDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a"}, l.IDs())
}

func TestSetIDsKeepsDanglingRaw(t *testing.T) {
	l := newStringList("a")
	l.SetIDs([]string{"a", "ghost"})

	assert.Equal(t, []string{"a", "ghost"}, l.IDs())
	assert.Equal(t, []string{"card:a"}, l.Resolve(), "dangling ids vanish from resolved views only")
}

func TestResolvePreservesOrder(t *testing.T) {
	l := newStringList("a", "b", "c")
	l.SetIDs([]string{"c", "a", "b"})
	assert.Equal(t, []string{"card:c", "card:a", "card:b"}, l.Resolve())
}
