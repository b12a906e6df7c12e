package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// The db must be opened with TranslateError so uniqueness violations surface
// as gorm.ErrDuplicatedKey.
func NewGORMProductRepository(db *gorm.DB, log *zap.Logger) *GORMProductRepository {
	return &GORMProductRepository{
		db:  db,
		log: log.Named("products"),
	}
}

// Create stores a new product and its images in one unit.
func (r *GORMProductRepository) Create(ctx context.Context, fields models.ProductFields, owner *models.User) (*models.Product, error) {
	product := models.NewProduct(fields)
	product.ID = uuid.NewString()
	product.UserID = owner.ID
	product.Images = models.BuildImages(product.ID, fields.Images, uuid.NewString)

	if err := r.db.WithContext(ctx).Omit("User").Create(product).Error; err != nil {
		return nil, r.handleError("create", product, err)
	}

	product.User = owner
	return product, nil
}

// FindMany pages through products in insertion order.
func (r *GORMProductRepository) FindMany(ctx context.Context, page Pagination) ([]models.Product, error) {
	page = page.Normalize()

	var products []models.Product
	err := r.withRelations(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&products).Error
	if err != nil {
		return nil, r.handleError("find_many", nil, err)
	}
	return products, nil
}

// FindOne looks a product up by id when term is a UUID, otherwise by
// case-insensitive title or by slug.
func (r *GORMProductRepository) FindOne(ctx context.Context, term string) (*models.Product, error) {
	q := r.withRelations(r.db.WithContext(ctx))
	if id, err := uuid.Parse(term); err == nil {
		q = q.Where("id = ?", id.String())
	} else {
		// Both sides go through the store's UPPER so an exact title always matches.
		q = q.Where("UPPER(title) = UPPER(?) OR slug = ?", term, strings.ToLower(term))
	}

	var product models.Product
	if err := q.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{Term: term}
		}
		return nil, r.handleError("find_one", nil, err)
	}
	return &product, nil
}

// Update merges patch onto the stored product and, when patch carries images,
// replaces the whole image list. Everything after the merge runs in one
// transaction; the fresh aggregate is read back after commit.
func (r *GORMProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch, owner *models.User) (*models.Product, error) {
	db := r.db.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{Term: id}
		}
		return nil, r.handleError("update", nil, err)
	}
	product.Apply(patch)

	err := db.Transaction(func(tx *gorm.DB) error {
		if patch.Images != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to delete images of product %s: %w", product.ID, err)
			}
		}

		product.UserID = owner.ID
		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return fmt.Errorf("failed to save product %s: %w", product.ID, err)
		}

		if patch.Images != nil && len(*patch.Images) > 0 {
			images := models.BuildImages(product.ID, *patch.Images, uuid.NewString)
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to save images of product %s: %w", product.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, r.handleError("update", &product, err)
	}

	return r.FindOne(ctx, product.ID)
}

// Remove deletes the product matched by id, together with its images.
func (r *GORMProductRepository) Remove(ctx context.Context, id string) error {
	product, err := r.FindOne(ctx, id)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images of product %s: %w", product.ID, err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
			return fmt.Errorf("failed to delete product %s: %w", product.ID, err)
		}
		return nil
	})
	if err != nil {
		return r.handleError("remove", nil, err)
	}
	return nil
}

// DeleteAll removes every product and image.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete all images: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete all products: %w", err)
		}
		return nil
	})
	if err != nil {
		return r.handleError("delete_all", nil, err)
	}
	return nil
}

func (r *GORMProductRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("User")
}

// handleError classifies a store failure. Anything that is not a uniqueness
// violation is logged in full and reported as ErrInternal.
func (r *GORMProductRepository) handleError(op string, product *models.Product, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		dup := &DuplicateProductError{}
		if product != nil {
			dup.Title, dup.Slug = product.Title, product.Slug
		}
		return dup
	}

	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if product != nil && product.ID != "" {
		fields = append(fields, zap.String("product_id", product.ID))
	}
	r.log.Error("catalog store failure", fields...)
	return ErrInternal
}
