package domain

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// knownRetailers is matched in order against the host; the first fragment contained in the
// host wins.
var knownRetailers = []struct {
	fragment   string
	name       string
	logoURL    string
	brandColor string
}{
	{"amazon", "Amazon", "https://logo.clearbit.com/amazon.in", "#FF9900"},
	{"flipkart", "Flipkart", "https://logo.clearbit.com/flipkart.com", "#2874F0"},
	{"myntra", "Myntra", "https://logo.clearbit.com/myntra.com", "#FF3F6C"},
	{"ajio", "Ajio", "https://logo.clearbit.com/ajio.com", "#000000"},
	{"croma", "Croma", "https://logo.clearbit.com/croma.com", "#0DB14B"},
}

// ResolveRetailer maps a product URL to its retailer. It never fails: when no host can be
// parsed the raw string is used as the domain.
func ResolveRetailer(rawURL string) RetailerInfo {
	domain := retailerDomain(rawURL)

	for _, r := range knownRetailers {
		if strings.Contains(domain, r.fragment) {
			return RetailerInfo{
				Name:       r.name,
				Domain:     domain,
				LogoURL:    r.logoURL,
				BrandColor: r.brandColor,
			}
		}
	}

	return RetailerInfo{
		Name:   capitalizeFirst(strings.Split(domain, ".")[0]),
		Domain: domain,
	}
}

// retailerDomain extracts the host without port and without a leading "www."
func retailerDomain(rawURL string) string {
	host := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Hostname() != "" {
		host = parsed.Hostname()
	}
	return strings.TrimPrefix(host, "www.")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
