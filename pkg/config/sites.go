package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"trafficgen/pkg/errors"
	"trafficgen/pkg/logger"
)

// ParseSites parses a line-oriented site list. Blank lines are skipped,
// invalid URLs are skipped with a warning, order is preserved.
func ParseSites(input string) []*url.URL {
	var sites []*url.URL

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		u, err := url.Parse(trimmed)
		if err != nil {
			logger.Warn("skipping unparseable site URL", "url", trimmed, "error", err)
			continue
		}
		if !u.IsAbs() || u.Host == "" {
			logger.Warn("skipping site URL without scheme or host", "url", trimmed)
			continue
		}

		sites = append(sites, u)
	}

	return sites
}

// LoadSites reads and parses the site list file. An empty result is an
// error: the generator has nothing to browse without sites.
func LoadSites(path string) ([]*url.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site list %s: %w", path, err)
	}

	sites := ParseSites(string(data))
	if len(sites) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoSites, path)
	}

	return sites, nil
}
