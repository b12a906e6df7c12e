package services

import (
	"context"
	"errors"

	"catalog/internal/auth"
	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

// ProductServiceOptions carries the optional collaborators of ProductService.
type ProductServiceOptions struct {
	Policy    auth.Policy
	Publisher EventPublisher
	Exchange  string
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// ProductService handles business logic related to products. Every mutation
// passes the role gate before the store is touched.
type ProductService struct {
	repo    repositories.ProductRepository
	policy  auth.Policy
	events  eventEmitter
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewProductService creates a new ProductService. A nil Policy falls back to
// auth.DefaultPolicy and a nil Logger to a no-op logger.
func NewProductService(repo repositories.ProductRepository, opts ProductServiceOptions) *ProductService {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("product_service")

	policy := opts.Policy
	if policy == nil {
		policy = auth.DefaultPolicy()
	}

	return &ProductService{
		repo:    repo,
		policy:  policy,
		events:  eventEmitter{publisher: opts.Publisher, exchange: opts.Exchange, log: log},
		metrics: opts.Metrics,
		log:     log,
	}
}

// CreateProduct stores a new product owned by caller.
func (s *ProductService) CreateProduct(ctx context.Context, caller *auth.Identity, fields models.ProductFields) (product *models.Product, err error) {
	defer func() { s.observe(auth.OpCreateProduct, err) }()

	if err := s.authorizeOwner(auth.OpCreateProduct, caller); err != nil {
		return nil, err
	}

	product, err = s.repo.Create(ctx, fields, caller.Owner())
	if err != nil {
		return nil, err
	}

	s.events.emit(productEvent(EventProductCreated, product, caller))
	return product, nil
}

// ListProducts returns one page of products.
func (s *ProductService) ListProducts(ctx context.Context, page repositories.Pagination) (products []models.Product, err error) {
	defer func() { s.observe("list_products", err) }()
	return s.repo.FindMany(ctx, page)
}

// GetProduct looks a product up by id, title or slug.
func (s *ProductService) GetProduct(ctx context.Context, term string) (product *models.Product, err error) {
	defer func() { s.observe("get_product", err) }()
	return s.repo.FindOne(ctx, term)
}

// UpdateProduct applies patch to the product identified by id and records
// caller as its owner.
func (s *ProductService) UpdateProduct(ctx context.Context, caller *auth.Identity, id string, patch models.ProductPatch) (product *models.Product, err error) {
	defer func() { s.observe(auth.OpUpdateProduct, err) }()

	if err := s.authorizeOwner(auth.OpUpdateProduct, caller); err != nil {
		return nil, err
	}

	product, err = s.repo.Update(ctx, id, patch, caller.Owner())
	if err != nil {
		return nil, err
	}

	s.events.emit(productEvent(EventProductUpdated, product, caller))
	return product, nil
}

// DeleteProduct removes the product identified by id.
func (s *ProductService) DeleteProduct(ctx context.Context, caller *auth.Identity, id string) (err error) {
	defer func() { s.observe(auth.OpDeleteProduct, err) }()

	if err := s.policy.Authorize(auth.OpDeleteProduct, caller); err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.events.emit(CatalogEvent{Type: EventProductDeleted, ProductID: id, ActorID: actorID(caller)})
	return nil
}

// ResetCatalog deletes every product and image.
func (s *ProductService) ResetCatalog(ctx context.Context, caller *auth.Identity) (err error) {
	defer func() { s.observe(auth.OpResetCatalog, err) }()

	if err := s.policy.Authorize(auth.OpResetCatalog, caller); err != nil {
		return err
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}

	s.log.Info("Catalog reset", zap.String("actor_id", actorID(caller)))
	s.events.emit(CatalogEvent{Type: EventCatalogReset, ActorID: actorID(caller)})
	return nil
}

// Authorize runs the role gate for op without touching the store, so callers
// can reject a request before looking at its payload.
func (s *ProductService) Authorize(op auth.Operation, caller *auth.Identity) error {
	var err error
	switch op {
	case auth.OpCreateProduct, auth.OpUpdateProduct:
		err = s.authorizeOwner(op, caller)
	default:
		err = s.policy.Authorize(op, caller)
	}
	if err != nil {
		s.observe(op, err)
	}
	return err
}

// authorizeOwner gates op and additionally requires a caller, since the
// caller becomes the product owner.
func (s *ProductService) authorizeOwner(op auth.Operation, caller *auth.Identity) error {
	if err := s.policy.Authorize(op, caller); err != nil {
		return err
	}
	if caller == nil {
		return auth.ErrMissingIdentity
	}
	return nil
}

func (s *ProductService) observe(op auth.Operation, err error) {
	s.metrics.ObserveOperation(string(op), outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, auth.ErrInsufficientRole), errors.Is(err, auth.ErrMissingIdentity):
		return metrics.OutcomeForbidden
	case errors.Is(err, repositories.ErrProductNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, repositories.ErrDuplicateProduct):
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeError
	}
}

func productEvent(eventType string, p *models.Product, caller *auth.Identity) CatalogEvent {
	return CatalogEvent{
		Type:      eventType,
		ProductID: p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		ActorID:   actorID(caller),
	}
}

func actorID(caller *auth.Identity) string {
	if caller == nil {
		return ""
	}
	return caller.ID
}
