package firecrawl

// scrapeRequest is the body of POST /v2/scrape
type scrapeRequest struct {
	URL     string         `json:"url"`
	Formats []scrapeFormat `json:"formats"`
}

type scrapeFormat struct {
	Type   string         `json:"type"`
	Schema map[string]any `json:"schema"`
}

// scrapeResponse is the envelope returned by POST /v2/scrape
type scrapeResponse struct {
	Success bool        `json:"success"`
	Data    *scrapeData `json:"data"`
	Error   string      `json:"error"`
}

type scrapeData struct {
	JSON     map[string]any  `json:"json"`
	Metadata *scrapeMetadata `json:"metadata"`
}

// scrapeMetadata is decoded leniently: Firecrawl sometimes sends ogImage as a list
type scrapeMetadata struct {
	Title       any `json:"title"`
	Description any `json:"description"`
	OgImage     any `json:"ogImage"`
	SourceURL   any `json:"sourceURL"`
}

func field(fieldType, description string) map[string]any {
	return map[string]any{
		"type":        fieldType,
		"description": description,
	}
}

// productSchema is the JSON schema sent with every extraction request
func productSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":         field("string", "Product title or name"),
			"description":   field("string", "Product description"),
			"price":         field("number", "Current price as a number"),
			"currency":      field("string", "Currency code like INR, USD"),
			"originalPrice": field("number", "Original price before discount"),
			"brand":         field("string", "Brand name"),
			"category":      field("string", "Product category"),
			"imageUrl":      field("string", "Main product image URL"),
			"highlights": map[string]any{
				"type":        "array",
				"description": "Product features or highlights",
				"items":       map[string]any{"type": "string"},
			},
			"rating":       field("number", "Product rating 0-5"),
			"reviewCount":  field("integer", "Number of reviews"),
			"availability": field("string", "Availability status like In Stock, Out of Stock"),
		},
		"required": []string{"title"},
	}
}

func newScrapeRequest(targetURL string) scrapeRequest {
	return scrapeRequest{
		URL: targetURL,
		Formats: []scrapeFormat{
			{Type: "json", Schema: productSchema()},
		},
	}
}
