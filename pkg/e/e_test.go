package e

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	err := Wrap("ProductRepo.FindByID", ErrProductNotFound)

	assert.EqualError(t, err, "ProductRepo.FindByID: product not found")
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.False(t, errors.Is(err, ErrInvalidProductID))
}

func TestCause(t *testing.T) {
	root := errors.New("connection refused")

	assert.Equal(t, root, Cause(Wrap("ProductUseCase.ApplyTax", Wrap("pgdb/product_repo.go:42", root))))
	assert.Equal(t, root, Cause(root))

	detailed := fmt.Errorf("%w: %q", ErrInvalidProductID, "abc")
	assert.EqualError(t, Cause(Wrap("op", detailed)), `invalid product id: "abc"`)
	assert.Nil(t, Cause(nil))
}
