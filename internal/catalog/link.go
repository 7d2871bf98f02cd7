package catalog

import (
	"net/url"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// ProductLink resolves the purchase URL for an etchant. An explicit
// product URL wins; otherwise an etchant stocked by the shop links to a
// shop search for its name. Returns "" when the etchant cannot be bought.
func ProductLink(e model.Etchant, shopBase string) string {
	if u := strings.TrimSpace(e.ProductURL); u != "" {
		if parsed, err := url.Parse(u); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
			return u
		}
	}
	if !e.PaceProductAvailable || shopBase == "" {
		return ""
	}

	base, err := url.Parse(strings.TrimRight(shopBase, "/"))
	if err != nil || base.Host == "" {
		return ""
	}
	base.Path += "/search"
	base.RawQuery = url.Values{"q": {e.Name}}.Encode()
	return base.String()
}

// Linker returns a ProductLink resolver bound to a shop base URL
func Linker(shopBase string) func(model.Etchant) string {
	return func(e model.Etchant) string {
		return ProductLink(e, shopBase)
	}
}
