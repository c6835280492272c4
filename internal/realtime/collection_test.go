package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testRow struct {
	ID   uuid.UUID
	Name string
}

func newTestCollection() *Collection[testRow] {
	return NewCollection(func(r testRow) uuid.UUID { return r.ID })
}

func TestCollection_InsertIsIdempotent(t *testing.T) {
	c := newTestCollection()
	row := testRow{ID: uuid.New(), Name: "first"}

	assert.True(t, c.Insert(row))
	assert.Equal(t, 1, c.Len())

	// Replayed insert for the same id leaves the original row intact
	assert.False(t, c.Insert(testRow{ID: row.ID, Name: "replay"}))
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get(row.ID)
	assert.True(t, ok)
	assert.Equal(t, "first", got.Name)
}

func TestCollection_UpdateReplacesOrNoops(t *testing.T) {
	c := newTestCollection()
	row := testRow{ID: uuid.New(), Name: "before"}
	c.Insert(row)

	assert.True(t, c.Update(testRow{ID: row.ID, Name: "after"}))
	got, _ := c.Get(row.ID)
	assert.Equal(t, "after", got.Name)

	// Update for an unknown id changes nothing
	assert.False(t, c.Update(testRow{ID: uuid.New(), Name: "ghost"}))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_DeleteUnknownIsNoop(t *testing.T) {
	c := newTestCollection()
	row := testRow{ID: uuid.New()}
	c.Insert(row)

	assert.False(t, c.Delete(uuid.New()))
	assert.Equal(t, 1, c.Len())

	assert.True(t, c.Delete(row.ID))
	assert.Equal(t, 0, c.Len())
}

func TestCollection_DeleteWhere(t *testing.T) {
	c := newTestCollection()
	keep := testRow{ID: uuid.New(), Name: "keep"}
	c.Insert(keep)
	c.Insert(testRow{ID: uuid.New(), Name: "drop"})
	c.Insert(testRow{ID: uuid.New(), Name: "drop"})

	removed := c.DeleteWhere(func(r testRow) bool { return r.Name == "drop" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(keep.ID)
	assert.True(t, ok)
}

func TestCollection_Replace(t *testing.T) {
	c := newTestCollection()
	c.Insert(testRow{ID: uuid.New(), Name: "old"})

	fresh := []testRow{
		{ID: uuid.New(), Name: "a"},
		{ID: uuid.New(), Name: "b"},
	}
	c.Replace(fresh)

	assert.Equal(t, 2, c.Len())
	assert.ElementsMatch(t, fresh, c.Items())
}
