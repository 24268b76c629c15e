package firecrawl

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wist/backend/internal/domain"
)

// Defaults applied when the extraction payload leaves a field out
const (
	DefaultTitle    = "Unknown Product"
	DefaultCurrency = "INR"

	maxRating = 5.0
)

// nowFunc is the clock used for ScrapedAt
var nowFunc = time.Now

// MapToScrapedProduct converts an extraction payload into a ScrapedProduct. It never fails:
// fields that are missing or carry the wrong JSON type fall back to their defaults.
func MapToScrapedProduct(raw domain.RawExtractionPayload, metadata *domain.ExtractionMetadata, sourceURL string) *domain.ScrapedProduct {
	product := &domain.ScrapedProduct{
		Title:            stringOr(raw["title"], DefaultTitle),
		Description:      stringOr(raw["description"], ""),
		ImageURL:         stringOr(raw["imageUrl"], ""),
		Price:            nonNegative(numberValue(raw["price"])),
		Currency:         stringOr(raw["currency"], DefaultCurrency),
		OriginalPrice:    nonNegative(numberValue(raw["originalPrice"])),
		Brand:            stringOr(raw["brand"], ""),
		Category:         stringOr(raw["category"], ""),
		Highlights:       stringSlice(raw["highlights"]),
		AdditionalImages: stringSlice(raw["additionalImages"]),
		Rating:           rating(numberValue(raw["rating"])),
		ReviewCount:      intValue(raw["reviewCount"]),
		Availability:     stringOr(raw["availability"], ""),
		Retailer:         domain.ResolveRetailer(sourceURL),
		SourceURL:        sourceURL,
		ScrapedAt:        nowFunc().UnixMilli(),
	}

	if product.ImageURL == "" && metadata != nil {
		product.ImageURL = strings.TrimSpace(metadata.OgImage)
	}

	return product
}

// mapMetadata flattens the lenient wire metadata into the domain block
func mapMetadata(m *scrapeMetadata) *domain.ExtractionMetadata {
	if m == nil {
		return nil
	}
	return &domain.ExtractionMetadata{
		Title:       firstString(m.Title),
		Description: firstString(m.Description),
		OgImage:     firstString(m.OgImage),
		SourceURL:   firstString(m.SourceURL),
	}
}

// firstString accepts a string or a list whose first string element is used
func firstString(v any) string {
	if list, ok := v.([]any); ok {
		for _, elem := range list {
			if s, ok := stringValue(elem); ok {
				return s
			}
		}
		return ""
	}
	s, _ := stringValue(v)
	return s
}

func stringOr(v any, fallback string) string {
	if s, ok := stringValue(v); ok {
		return s
	}
	return fallback
}

// stringValue returns the text of a JSON scalar. Blank strings, null, arrays and objects are absent.
func stringValue(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// numberValue accepts JSON numbers and numeric strings; anything else is absent
func numberValue(v any) *float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// intValue accepts integral numbers only
func intValue(v any) *int {
	f := numberValue(v)
	if f == nil || *f != math.Trunc(*f) || *f < 0 || *f > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

func nonNegative(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

func rating(f *float64) *float64 {
	if f == nil || *f < 0 || *f > maxRating {
		return nil
	}
	return f
}

// stringSlice keeps the string-like elements of a JSON array in order; never nil
func stringSlice(v any) []string {
	result := []string{}
	switch list := v.(type) {
	case []any:
		for _, elem := range list {
			if s, ok := stringValue(elem); ok {
				result = append(result, s)
			}
		}
	case []string:
		for _, elem := range list {
			if s, ok := stringValue(elem); ok {
				result = append(result, s)
			}
		}
	}
	return result
}
