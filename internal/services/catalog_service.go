package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopbot/internal/domain"
	"shopbot/internal/repos"
)

type CatalogService struct {
	Brands *repos.BrandRepo
	Cats   *repos.CategoryRepo
	Prods  *repos.ProductRepo

	now func() time.Time
}

func NewCatalogService(brands *repos.BrandRepo, cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Brands: brands, Cats: cats, Prods: prods, now: time.Now}
}

func (s *CatalogService) BrandNames(ctx context.Context) ([]string, error) {
	brands, err := s.Brands.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		out = append(out, b.Name)
	}
	return out, nil
}

func (s *CatalogService) CategoryNames(ctx context.Context, brand string) ([]string, error) {
	cats, err := s.Cats.ListByBrand(ctx, brand)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out, nil
}

func (s *CatalogService) ProductNames(ctx context.Context, brand, category string) ([]string, error) {
	prods, err := s.Prods.ListByCategory(ctx, brand, category)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(prods))
	for _, p := range prods {
		out = append(out, p.Name)
	}
	return out, nil
}

// Product returns ErrNotFound when the triple is not in the catalog.
func (s *CatalogService) Product(ctx context.Context, brand, category, name string) (domain.Product, error) {
	p, err := s.Prods.Find(ctx, brand, category, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: %s / %s / %s", ErrNotFound, brand, category, name)
	}
	return p, err
}

// AddProduct creates missing parents and replaces any product with the same
// (brand, category, name).
func (s *CatalogService) AddProduct(ctx context.Context, in domain.ProductInput) error {
	if strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: brand, category and name are required", ErrFormat)
	}
	brandID, err := s.Brands.GetOrCreate(ctx, in.Brand)
	if err != nil {
		return fmt.Errorf("brand %q: %w", in.Brand, err)
	}
	catID, err := s.Cats.GetOrCreate(ctx, brandID, in.Category)
	if err != nil {
		return fmt.Errorf("category %q: %w", in.Category, err)
	}
	if err := s.Prods.Upsert(ctx, catID, in, s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("product %q: %w", in.Name, err)
	}
	return nil
}

// DeleteProduct returns ErrNotFound and leaves the catalog untouched when the
// triple does not exist.
func (s *CatalogService) DeleteProduct(ctx context.Context, brand, category, name string) error {
	n, err := s.Prods.Delete(ctx, brand, category, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s / %s / %s", ErrNotFound, brand, category, name)
	}
	return nil
}

func (s *CatalogService) AttachContent(ctx context.Context, messageRef int64, c domain.ArchivedContent) error {
	_, err := s.Prods.UpdateContentByMessageRef(ctx, messageRef, c)
	return err
}

func (s *CatalogService) Entries(ctx context.Context) ([]domain.CatalogEntry, error) {
	return s.Prods.ListAll(ctx)
}

func (s *CatalogService) ProductCount(ctx context.Context) (int, error) {
	return s.Prods.Count(ctx)
}
