package services

import (
	"context"
	"fmt"

	"catalog/internal/auth"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// seedConcurrency bounds the parallel product inserts of a seed run.
const seedConcurrency = 4

// SeedUser is a user inserted by the seed, with a plain password.
type SeedUser struct {
	Email    string
	FullName string
	Password string
	Roles    []string
}

// SeedData is the content of a seed run. Products are owned by the first
// user holding the admin role.
type SeedData struct {
	Users    []SeedUser
	Products []models.ProductFields
}

// SeedService wipes the catalog and the users and loads a known data set.
type SeedService struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	data     SeedData
	log      *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(products repositories.ProductRepository, users repositories.UserRepository, data SeedData, log *zap.Logger) *SeedService {
	return &SeedService{
		products: products,
		users:    users,
		data:     data,
		log:      log.Named("seed"),
	}
}

// Run deletes all products and users, inserts the seed users and then the
// seed products concurrently. It succeeds only if every insert did.
func (s *SeedService) Run(ctx context.Context) error {
	if err := s.products.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	owner, err := s.insertUsers(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, fields := range s.data.Products {
		fields := fields
		g.Go(func() error {
			if _, err := s.products.Create(gctx, fields, owner); err != nil {
				return fmt.Errorf("failed to seed product %q: %w", fields.Title, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Info("Seed completed",
		zap.Int("users", len(s.data.Users)),
		zap.Int("products", len(s.data.Products)),
	)
	return nil
}

func (s *SeedService) insertUsers(ctx context.Context) (*models.User, error) {
	var owner *models.User
	for _, su := range s.data.Users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password of %s: %w", su.Email, err)
		}
		user := &models.User{
			Email:    su.Email,
			FullName: su.FullName,
			Password: string(hashed),
			IsActive: true,
			Roles:    append([]string{}, su.Roles...),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		if owner == nil && user.HasRole(auth.RoleAdmin) {
			owner = user
		}
	}

	if owner == nil && len(s.data.Products) > 0 {
		return nil, fmt.Errorf("seed data has products but no admin user to own them")
	}
	return owner, nil
}
