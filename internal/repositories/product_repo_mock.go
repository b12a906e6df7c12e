package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Images live in their own table keyed by the owning product id.
type MockProductRepository struct {
	products map[string]models.Product
	images   map[string][]models.ProductImage
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		images:   make(map[string][]models.ProductImage),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, fields models.ProductFields, owner *models.User) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := models.NewProduct(fields)
	product.ID = uuid.NewString()
	if err := r.checkUnique(product); err != nil {
		return nil, err
	}

	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	product.UserID = owner.ID
	product.User = owner

	images := models.BuildImages(product.ID, fields.Images, uuid.NewString)
	r.store(*product, images)

	product.Images = images
	return r.clone(*product, images), nil
}

// FindMany returns products in insertion order.
func (r *MockProductRepository) FindMany(ctx context.Context, page Pagination) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page = page.Normalize()
	productList := make([]models.Product, 0, page.Limit)
	for i := page.Offset; i < len(r.order) && len(productList) < page.Limit; i++ {
		id := r.order[i]
		productList = append(productList, *r.clone(r.products[id], r.images[id]))
	}
	return productList, nil
}

// FindOne returns a product by id, title or slug.
func (r *MockProductRepository) FindOne(ctx context.Context, term string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.lookup(term)
	if !ok {
		return nil, &ProductNotFoundError{Term: term}
	}
	return r.clone(product, r.images[product.ID]), nil
}

// Update modifies an existing product. The new state is built aside and
// swapped in only once every check passed.
func (r *MockProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch, owner *models.User) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return nil, &ProductNotFoundError{Term: id}
	}

	product := *r.clone(current, nil)
	product.Apply(patch)
	if err := r.checkUnique(&product); err != nil {
		return nil, err
	}

	images := r.images[id]
	if patch.Images != nil {
		images = models.BuildImages(id, *patch.Images, uuid.NewString)
	}
	product.UserID = owner.ID
	product.User = owner
	product.UpdatedAt = time.Now()

	r.products[id] = product
	r.images[id] = images
	return r.clone(product, images), nil
}

// Remove deletes a product and its images.
func (r *MockProductRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.lookup(id)
	if !ok {
		return &ProductNotFoundError{Term: id}
	}
	delete(r.products, product.ID)
	delete(r.images, product.ID)
	for i, existing := range r.order {
		if existing == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll empties the repository.
func (r *MockProductRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[string]models.Product)
	r.images = make(map[string][]models.ProductImage)
	r.order = nil
	return nil
}

func (r *MockProductRepository) store(product models.Product, images []models.ProductImage) {
	product.Images = nil
	r.products[product.ID] = product
	r.images[product.ID] = images
	r.order = append(r.order, product.ID)
}

func (r *MockProductRepository) lookup(term string) (models.Product, bool) {
	if id, err := uuid.Parse(term); err == nil {
		product, ok := r.products[id.String()]
		return product, ok
	}
	slug := strings.ToLower(term)
	for _, id := range r.order {
		product := r.products[id]
		if strings.EqualFold(product.Title, term) || product.Slug == slug {
			return product, true
		}
	}
	return models.Product{}, false
}

func (r *MockProductRepository) checkUnique(candidate *models.Product) error {
	for id, existing := range r.products {
		if id == candidate.ID {
			continue
		}
		if existing.Title == candidate.Title || existing.Slug == candidate.Slug {
			return &DuplicateProductError{Title: candidate.Title, Slug: candidate.Slug}
		}
	}
	return nil
}

// clone detaches the returned aggregate from the repository's storage.
func (r *MockProductRepository) clone(product models.Product, images []models.ProductImage) *models.Product {
	product.Sizes = append(product.Sizes[:0:0], product.Sizes...)
	product.Tags = append(product.Tags[:0:0], product.Tags...)
	product.Images = append([]models.ProductImage{}, images...)
	if product.User != nil {
		owner := *product.User
		product.User = &owner
	}
	return &product
}
