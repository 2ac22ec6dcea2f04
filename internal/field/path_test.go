package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildPath(t *testing.T) {
	assert.Equal(t, "name", ChildPath("", "name"))
	assert.Equal(t, "name", ChildPath(JSONRoot, "name"))
	assert.Equal(t, "order.name", ChildPath("order", "name"))
}

func TestArrayAndAttributePaths(t *testing.T) {
	assert.Equal(t, "items[*]", ArrayPath("items"))
	assert.Equal(t, "order.@currency", AttributePath("order", "currency"))
}

func TestStripArrayMarkers(t *testing.T) {
	assert.Equal(t, "order.items.id", StripArrayMarkers("order.items[*].id"))
	assert.Equal(t, "plain", StripArrayMarkers("plain"))
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"order", "items[*]", "id"}, Segments("order.items[*].id"))
	assert.Nil(t, Segments(""))
}
