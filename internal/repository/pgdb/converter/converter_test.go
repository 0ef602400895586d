package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProductConverter_DropsTimestamps(t *testing.T) {
	conv := NewProductConverterImpl()
	now := time.Now()

	entities := conv.ToArrEntity([]ProductModel{
		{ID: 1, Name: "Widget", Description: "Blue", Price: 30, QuantityAvailable: 50, CreatedAt: now, UpdatedAt: &now},
		{ID: 2, Name: "Gadget", Price: -1.5},
	})

	assert.Equal(t, []domain.Product{
		{ID: 1, Name: "Widget", Description: "Blue", Price: 30, QuantityAvailable: 50},
		{ID: 2, Name: "Gadget", Price: -1.5},
	}, entities)
}

func TestProductConverter_Nil(t *testing.T) {
	conv := NewProductConverterImpl()

	assert.Nil(t, conv.ToModel(nil))
	assert.Nil(t, conv.ToEntity(nil))
}
