// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductTestService(t *testing.T) *ProductService {
	t.Helper()
	return NewProductService(setupTestDB(t), nil)
}

func TestCreateAndGetProduct(t *testing.T) {
	service := newProductTestService(t)

	product, err := service.CreateProduct(&CreateProductRequest{
		Name:     "Clio V",
		Price:    50,
		Quantity: 3,
		Category: "voiture",
		Brand:    "Renault",
		Color:    "gris",
		Year:     2022,
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	fetched, err := service.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clio V", fetched.Name)
	assert.Equal(t, 50.0, fetched.Price)
	assert.Equal(t, 3, fetched.Quantity)
}

func TestCreateProductRejectsInvalidPrice(t *testing.T) {
	service := newProductTestService(t)

	_, err := service.CreateProduct(&CreateProductRequest{
		Name:  "Clio V",
		Price: 0,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateProductPartialFields(t *testing.T) {
	service := newProductTestService(t)

	product, err := service.CreateProduct(&CreateProductRequest{
		Name:     "Clio V",
		Price:    50,
		Quantity: 3,
		Brand:    "Renault",
	})
	require.NoError(t, err)

	newPrice := 65.0
	updated, err := service.UpdateProduct(product.ID, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 65.0, updated.Price)
	// Untouched fields keep their values.
	assert.Equal(t, "Clio V", updated.Name)
	assert.Equal(t, 3, updated.Quantity)
}

func TestUpdateProductNotFound(t *testing.T) {
	service := newProductTestService(t)

	newPrice := 65.0
	_, err := service.UpdateProduct(999, &UpdateProductRequest{Price: &newPrice})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestDeleteProduct(t *testing.T) {
	service := newProductTestService(t)

	product, err := service.CreateProduct(&CreateProductRequest{
		Name:  "Clio V",
		Price: 50,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(product.ID))

	_, err = service.GetProduct(product.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")

	err = service.DeleteProduct(product.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestSearchProductsFiltersAndPaginates(t *testing.T) {
	service := newProductTestService(t)

	seed := []CreateProductRequest{
		{Name: "Clio V", Price: 50, Quantity: 2, Category: "voiture", Brand: "Renault"},
		{Name: "208", Price: 55, Quantity: 1, Category: "voiture", Brand: "Peugeot"},
		{Name: "Master", Price: 90, Quantity: 1, Category: "utilitaire", Brand: "Renault"},
	}
	for i := range seed {
		_, err := service.CreateProduct(&seed[i])
		require.NoError(t, err)
	}

	params := ProductSearchParams{Category: "voiture"}
	params.Page = 1
	params.Limit = 10

	products, total, err := service.SearchProducts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)

	params = ProductSearchParams{Brand: "Renault"}
	params.Page = 1
	params.Limit = 1

	products, total, err = service.SearchProducts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 1)

	min := 80.0
	params = ProductSearchParams{PriceMin: &min}
	params.Page = 1
	params.Limit = 10

	products, total, err = service.SearchProducts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Master", products[0].Name)
}

func TestSearchProductsByKeyword(t *testing.T) {
	service := newProductTestService(t)

	_, err := service.CreateProduct(&CreateProductRequest{Name: "Clio V", Price: 50})
	require.NoError(t, err)
	_, err = service.CreateProduct(&CreateProductRequest{Name: "Megane", Price: 60})
	require.NoError(t, err)

	params := ProductSearchParams{}
	params.Page = 1
	params.Limit = 10
	params.Search = "clio"

	products, total, err := service.SearchProducts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Clio V", products[0].Name)
}
