package context

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/types"
)

func newKigaliContext(t *testing.T) *Context {
	loc, err := time.LoadLocation("Africa/Kigali")
	require.NoError(t, err)
	cfg := Config{
		Zone:      loc,
		DateStyle: types.DateStyleDayFirst,
		Now:       time.Date(2015, 8, 14, 10, 38, 30, 123456000, loc),
	}
	return New(cfg)
}

func TestResolveNestedPathCaseInsensitive(t *testing.T) {
	c := newKigaliContext(t)
	c.SetPath([]string{"contact", "name"}, types.NewString("Bob"))

	v, err := c.Resolve("Contact.NAME")
	require.NoError(t, err)
	assert.Equal(t, "Bob", v.AsString())
}

func TestResolveMissingLeafErrors(t *testing.T) {
	c := newKigaliContext(t)
	c.SetPath([]string{"contact", "name"}, types.NewString("Bob"))

	_, err := c.Resolve("contact.age")
	assert.Error(t, err)
}

func TestResolveContainerUsesDefault(t *testing.T) {
	c := newKigaliContext(t)
	contact := types.NewContainer()
	contact.Set("name", types.NewString("Bob"))
	contact.SetDefault(types.NewString("Bob Smith"))
	c.Set("contact", types.NewContainer(contact))

	v, err := c.Resolve("contact")
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", v.AsString())
}

func TestResolveContainerWithoutDefaultRendersSorted(t *testing.T) {
	c := newKigaliContext(t)
	contact := types.NewContainer()
	contact.Set("name", types.NewString("Bob"))
	contact.Set("age", types.NewInt(32))
	c.Set("contact", types.NewContainer(contact))

	v, err := c.Resolve("contact")
	require.NoError(t, err)
	assert.Contains(t, v.AsString(), "age")
	assert.Contains(t, v.AsString(), "name")
	assert.Less(t, strings.Index(v.AsString(), "age"), strings.Index(v.AsString(), "name"))
}

func TestDescendIntoNonContainerErrors(t *testing.T) {
	c := newKigaliContext(t)
	c.Set("name", types.NewString("Bob"))

	_, err := c.Resolve("name.first")
	assert.Error(t, err)
}
