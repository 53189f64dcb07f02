package services

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"shopbot/internal/domain"
)

// CatalogFile is the YAML layout accepted by ImportCatalog:
//
//	brands:
//	  - name: Acme
//	    categories:
//	      - name: Widgets
//	        products:
//	          - name: Widget-A
//	            message_ref: 12
//	            links: {ozon: "https://...", wb: "", ym: ""}
//	            photo_ref: "13"
type CatalogFile struct {
	Brands []struct {
		Name       string `yaml:"name"`
		Categories []struct {
			Name     string `yaml:"name"`
			Products []struct {
				Name       string            `yaml:"name"`
				MessageRef int64             `yaml:"message_ref"`
				Links      map[string]string `yaml:"links"`
				PhotoRef   string            `yaml:"photo_ref"`
			} `yaml:"products"`
		} `yaml:"categories"`
	} `yaml:"brands"`
}

// ImportCatalog upserts every product of the YAML document and returns how many
// were written. It stops at the first failing product.
func (s *CatalogService) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	var f CatalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	n := 0
	for _, b := range f.Brands {
		for _, c := range b.Categories {
			for _, p := range c.Products {
				in := domain.ProductInput{
					Brand:             b.Name,
					Category:          c.Name,
					Name:              p.Name,
					ChannelMessageRef: p.MessageRef,
					OzonLink:          p.Links[string(domain.Ozon)],
					WBLink:            p.Links[string(domain.Wildberries)],
					YMLink:            p.Links[string(domain.YandexMkt)],
					PhotoRef:          p.PhotoRef,
				}
				if err := s.AddProduct(ctx, in); err != nil {
					return n, err
				}
				n++
			}
		}
	}
	return n, nil
}
