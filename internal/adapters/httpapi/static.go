package httpapi

import (
	"fmt"
	"net/http"
	"regexp"
	"time"
)

type CacheStrategy string

const (
	CacheFirst           CacheStrategy = "cache-first"
	StaleWhileRevalidate CacheStrategy = "stale-while-revalidate"
)

type cacheRule struct {
	name     string
	pattern  *regexp.Regexp
	strategy CacheStrategy
	maxAge   time.Duration
}

const assetMaxAge = 365 * 24 * time.Hour

// cacheRules : la première règle qui correspond au chemin s'applique.
var cacheRules = []cacheRule{
	{name: "stylesheets", pattern: regexp.MustCompile(`\.css$`), strategy: CacheFirst, maxAge: assetMaxAge},
	{name: "js", pattern: regexp.MustCompile(`\.js$`), strategy: CacheFirst, maxAge: assetMaxAge},
	{name: "html", pattern: regexp.MustCompile(`\.html$`), strategy: CacheFirst, maxAge: assetMaxAge},
	{name: "images", pattern: regexp.MustCompile(`\.(png|svg|jpg|jpeg)$`), strategy: CacheFirst, maxAge: assetMaxAge},
	{name: "schedules", pattern: regexp.MustCompile(`^/api/v1/schedules/`), strategy: StaleWhileRevalidate, maxAge: 30 * time.Minute},
}

func (c cacheRule) header() string {
	switch c.strategy {
	case StaleWhileRevalidate:
		return fmt.Sprintf("public, max-age=0, stale-while-revalidate=%d", int(c.maxAge.Seconds()))
	default:
		return fmt.Sprintf("public, max-age=%d", int(c.maxAge.Seconds()))
	}
}

func matchCacheRule(path string) (cacheRule, bool) {
	for _, rule := range cacheRules {
		if rule.pattern.MatchString(path) {
			return rule, true
		}
	}
	return cacheRule{}, false
}

// withCacheRules pose Cache-Control selon la table ; un handler peut le surcharger.
func withCacheRules(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rule, ok := matchCacheRule(r.URL.Path); ok {
			w.Header().Set("Cache-Control", rule.header())
		}
		next.ServeHTTP(w, r)
	})
}
