package domain

import (
	"strconv"
	"strings"
)

type Brand struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Category struct {
	ID      int64  `db:"id"`
	BrandID int64  `db:"brand_id"`
	Name    string `db:"name"`
}

type Product struct {
	ID                int64  `db:"id"`
	CategoryID        int64  `db:"category_id"`
	Name              string `db:"name"`
	ChannelMessageRef int64  `db:"channel_message_ref"`
	OzonLink          string `db:"ozon_link"`
	WBLink            string `db:"wb_link"`
	YMLink            string `db:"ym_link"`
	DateAdded         string `db:"date_added"`
	StoredFileRef     string `db:"stored_file_ref"`
	StoredFileType    string `db:"stored_file_type"` // document | photo
	Caption           string `db:"caption"`
	PhotoRef          string `db:"photo_ref"`
}

// PhotoMessageID returns the archive message id of the preview photo.
// Empty, non-numeric and non-positive references mean "no photo".
func (p Product) PhotoMessageID() (int, bool) {
	ref := strings.TrimSpace(p.PhotoRef)
	if ref == "" {
		return 0, false
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HasStoredFile reports whether enrichment captured a durable file reference.
func (p Product) HasStoredFile() bool {
	return p.StoredFileRef != "" && (p.StoredFileType == FileTypeDocument || p.StoredFileType == FileTypePhoto)
}

const (
	FileTypeDocument = "document"
	FileTypePhoto    = "photo"
)

// Marketplace is a storefront a product can be bought on.
type Marketplace string

const (
	Ozon        Marketplace = "ozon"
	Wildberries Marketplace = "wb"
	YandexMkt   Marketplace = "ym"
)

// Marketplaces lists storefronts in button order.
var Marketplaces = []Marketplace{Ozon, Wildberries, YandexMkt}

type PurchaseLink struct {
	Market Marketplace
	URL    string
}

// PurchaseLinks returns the non-empty links in Ozon, Wildberries, Yandex.Market order.
func (p Product) PurchaseLinks() []PurchaseLink {
	var out []PurchaseLink
	for _, m := range Marketplaces {
		if u := p.Link(m); u != "" {
			out = append(out, PurchaseLink{Market: m, URL: u})
		}
	}
	return out
}

func (p Product) Link(m Marketplace) string {
	switch m {
	case Ozon:
		return p.OzonLink
	case Wildberries:
		return p.WBLink
	case YandexMkt:
		return p.YMLink
	}
	return ""
}

// ProductInput is the full replacement record of an admin add.
type ProductInput struct {
	Brand             string
	Category          string
	Name              string
	ChannelMessageRef int64
	OzonLink          string
	WBLink            string
	YMLink            string
	PhotoRef          string
}

// ArchivedContent is the durable reference extracted from an archive message.
type ArchivedContent struct {
	FileRef  string
	FileType string
	Caption  string
}

// CatalogEntry is one product row with its parent names, used for listings.
type CatalogEntry struct {
	Brand    string `db:"brand"`
	Category string `db:"category"`
	Product
}
