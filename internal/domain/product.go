package domain

// RawExtractionPayload is the loosely-typed object the scrape service returns under data.json.
// Values follow encoding/json decoding rules (float64, string, bool, []any, map[string]any, nil).
type RawExtractionPayload map[string]any

// ExtractionMetadata is the page metadata block returned next to the extraction payload
type ExtractionMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	OgImage     string `json:"ogImage,omitempty"`
	SourceURL   string `json:"sourceURL,omitempty"`
}

// RetailerInfo identifies the shop a product URL belongs to
type RetailerInfo struct {
	Name       string `json:"name" yaml:"name"`
	Domain     string `json:"domain" yaml:"domain"`
	LogoURL    string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	BrandColor string `json:"brandColor,omitempty" yaml:"brandColor,omitempty"`
}

// ScrapedProduct is the normalized product record built from one scrape
type ScrapedProduct struct {
	Title            string       `json:"title" yaml:"title"`
	Description      string       `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL         string       `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Price            *float64     `json:"price,omitempty" yaml:"price,omitempty"`
	Currency         string       `json:"currency" yaml:"currency"`
	OriginalPrice    *float64     `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Brand            string       `json:"brand,omitempty" yaml:"brand,omitempty"`
	Category         string       `json:"category,omitempty" yaml:"category,omitempty"`
	Highlights       []string     `json:"highlights" yaml:"highlights"`
	AdditionalImages []string     `json:"additionalImages" yaml:"additionalImages"`
	Rating           *float64     `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount      *int         `json:"reviewCount,omitempty" yaml:"reviewCount,omitempty"`
	Availability     string       `json:"availability,omitempty" yaml:"availability,omitempty"`
	Retailer         RetailerInfo `json:"retailer" yaml:"retailer"`
	SourceURL        string       `json:"sourceUrl" yaml:"sourceUrl"`
	ScrapedAt        int64        `json:"scrapedAt" yaml:"scrapedAt"` // epoch milliseconds
}

// ScrapeRequest is the body of a scrape or add-item request
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ScrapeResponse wraps a scrape preview result
type ScrapeResponse struct {
	Success bool            `json:"success"`
	Data    *ScrapedProduct `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Cached  bool            `json:"cached,omitempty"`
}
