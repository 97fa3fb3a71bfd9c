// Package crawler extracts and filters hyperlinks from fetched pages so a
// virtual user can walk a site the way a person clicking links would.
package crawler

import (
	"math/rand"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipSchemes are link schemes a browsing user never follows
var skipSchemes = map[string]bool{
	"mailto":     true,
	"javascript": true,
	"tel":        true,
	"ftp":        true,
}

// ExtractLinks parses an HTML document and returns every followable anchor
// target resolved against the page URL, in document order. Fragment-only
// anchors and non-navigational schemes are dropped; malformed targets are
// skipped silently.
func ExtractLinks(html string, base *url.URL) ([]*url.URL, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var links []*url.URL
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if skipSchemes[ref.Scheme] {
			return
		}

		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		links = append(links, resolved)
	})

	return links, nil
}

// FilterSameDomain keeps only links whose hostname exactly matches the base
// hostname, ignoring ports. Walks never leave the site they started on.
func FilterSameDomain(links []*url.URL, base *url.URL) []*url.URL {
	var same []*url.URL
	for _, l := range links {
		if l.Hostname() == base.Hostname() {
			same = append(same, l)
		}
	}
	return same
}

// PickUnvisited shuffles the candidate links and returns up to limit of them
// that are not in the visited set. Visited membership is by full URL string.
func PickUnvisited(links []*url.URL, limit int, visited map[string]bool, rng *rand.Rand) []*url.URL {
	shuffled := make([]*url.URL, len(links))
	copy(shuffled, links)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var picked []*url.URL
	for _, l := range shuffled {
		if len(picked) >= limit {
			break
		}
		if visited[l.String()] {
			continue
		}
		picked = append(picked, l)
	}
	return picked
}
