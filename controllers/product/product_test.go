package productcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	r.GET("/categories", GetAllCategories(db))
	r.GET("/categories/:id", GetCategoryByID(db))
	r.POST("/admin/products", CreateProduct(db))
	r.PUT("/admin/products/:id", UpdateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	r.POST("/admin/categories", CreateCategory(db))
	r.DELETE("/admin/categories/:id", DeleteCategory(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func offer(v float64) *float64 { return &v }

func seedCatalog(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	cat := models.Category{Name: "Chips"}
	require.NoError(t, db.Create(&cat).Error)
	products := []models.Product{
		{Name: "Banana Chips", Description: "Kerala style", StandardPrice: 100, OfferPrice: offer(80), CategoryID: cat.ID},
		{Name: "Tapioca Chips", Description: "Crunchy", StandardPrice: 50, CategoryID: cat.ID},
		{Name: "Jackfruit Chips", Description: "Seasonal", StandardPrice: 150, CategoryID: cat.ID},
	}
	require.NoError(t, db.Create(&products).Error)
	return cat
}

func TestGetProductsFilters(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := newRouter(db)

	fetch := func(query string) []models.Product {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products"+query, nil))
		require.Equal(t, http.StatusOK, w.Code, "query %q", query)
		var products []models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		return products
	}

	assert.Len(t, fetch(""), 3)

	byName := fetch("?search=banana")
	require.Len(t, byName, 1)
	assert.Equal(t, "Banana Chips", byName[0].Name)

	byDescription := fetch("?search=crunchy")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Tapioca Chips", byDescription[0].Name)

	priced := fetch("?min_price=60&max_price=120")
	require.Len(t, priced, 1)
	assert.Equal(t, "Banana Chips", priced[0].Name)

	sorted := fetch("?sort_by=standard_price&order=asc")
	require.Len(t, sorted, 3)
	assert.Equal(t, "Tapioca Chips", sorted[0].Name)
	assert.Equal(t, "Jackfruit Chips", sorted[2].Name)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?min_price=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	cat := seedCatalog(t, db)
	r := newRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/products", ProductInput{
		Name: "Murukku", StandardPrice: 40, CategoryID: cat.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, cat.Name, created.Category.Name)

	// Offer at or above standard price is refused
	w = doJSON(t, r, http.MethodPost, "/admin/products", ProductInput{
		Name: "Bad Offer", StandardPrice: 40, OfferPrice: offer(40), CategoryID: cat.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown category is refused
	w = doJSON(t, r, http.MethodPost, "/admin/products", ProductInput{
		Name: "Orphan", StandardPrice: 40, CategoryID: 999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductPartial(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := newRouter(db)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Tapioca Chips").First(&product).Error)
	url := fmt.Sprintf("/admin/products/%d", product.ID)

	w := doJSON(t, r, http.MethodPut, url, gin.H{"offer_price": 35})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	require.NotNil(t, updated.OfferPrice)
	assert.Equal(t, 35.0, *updated.OfferPrice)
	assert.Equal(t, "Tapioca Chips", updated.Name) // untouched

	w = doJSON(t, r, http.MethodPut, url, gin.H{"clear_offer": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Nil(t, updated.OfferPrice)

	w = doJSON(t, r, http.MethodPut, url, gin.H{"offer_price": 60})
	assert.Equal(t, http.StatusBadRequest, w.Code, "offer above standard must be refused")
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := newRouter(db)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Banana Chips").First(&product).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Gone from the storefront listing
	err := db.First(&models.Product{}, product.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Row survives for order history
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := newTestDB(t)
	cat := seedCatalog(t, db)
	r := newRouter(db)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", cat.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	empty := models.Category{Name: "Sweets"}
	require.NoError(t, db.Create(&empty).Error)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", empty.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
