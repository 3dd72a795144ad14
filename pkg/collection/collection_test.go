package collection_test

import (
	"testing"

	"github.com/muthuvel/santhai/pkg/collection"
	"github.com/stretchr/testify/assert"
)

type line struct {
	ProductID uint
	Category  string
	Subtotal  float64
}

func sampleLines() []line {
	return []line{
		{ProductID: 1, Category: "vegetables", Subtotal: 80},
		{ProductID: 2, Category: "vegetables", Subtotal: 45},
		{ProductID: 3, Category: "dairy", Subtotal: 62},
		{ProductID: 4, Category: "grains", Subtotal: 120},
	}
}

func TestMap(t *testing.T) {
	ids := collection.Map(sampleLines(), func(l line) uint { return l.ProductID })
	assert.Equal(t, []uint{1, 2, 3, 4}, ids)
}

func TestFilter(t *testing.T) {
	big := collection.Filter(sampleLines(), func(l line) bool { return l.Subtotal >= 80 })
	assert.Len(t, big, 2)
}

func TestGroupBy(t *testing.T) {
	byCat := collection.GroupBy(sampleLines(), func(l line) string { return l.Category })
	assert.Len(t, byCat["vegetables"], 2)
	assert.Len(t, byCat["dairy"], 1)
}

func TestKeyByLastWins(t *testing.T) {
	lines := append(sampleLines(), line{ProductID: 1, Category: "fruits", Subtotal: 30})
	byID := collection.KeyBy(lines, func(l line) uint { return l.ProductID })
	assert.Equal(t, "fruits", byID[1].Category)
}

func TestSum(t *testing.T) {
	total := collection.Sum(sampleLines(), func(l line) float64 { return l.Subtotal })
	assert.Equal(t, 307.0, total)
}

func TestChunk(t *testing.T) {
	chunks := collection.Chunk(sampleLines(), 3)
	assert.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[1], 1)

	assert.Nil(t, collection.Chunk(sampleLines(), 0))
}
