package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrCredentialMissing means no usable API key could be resolved for the
// configured endpoint. It is surfaced before any network call is attempted.
var ErrCredentialMissing = errors.New("no API key found for endpoint")

// LookupFunc resolves a variable name against a key-value store, normally
// the process environment.
type LookupFunc func(name string) (string, bool)

// apiProviders maps base-URL substrings to credential variable names. The
// slice order is the match precedence: the first pattern contained in the
// base URL whose variable resolves to a non-empty value wins.
var apiProviders = []struct {
	pattern string
	envVar  string
}{
	{"generativelanguage.googleapis.com", "generativelanguage"},
	{"perplexity", "perplexity"},
	{"groq", "groq"},
	{"openai", "openai"},
	{"deepseek", "deepseek"},
	{"anthropic", "anthropic"},
	{"together", "together"},
	{"hyperbolic", "hyperbolic"},
	{"mistral", "mistral"},
	{"cohere", "cohere"},
	{"fireworks", "fireworks"},
	{"anyscale", "anyscale"},
	{"replicate", "replicate"},
	{"huggingface", "huggingface"},
	{"azure", "azure"},
	{"openrouter.ai", "openrouter"},
}

var domainPattern = regexp.MustCompile(`https?://(?:api\.)?([^./]+)`)

// ResolveAPIKey returns the credential for the endpoint at baseURL.
//
// Precedence is fixed and deterministic: an explicitly configured key wins,
// then the provider pattern list is scanned in declaration order, then a
// variable named after the URL's domain, then the generic "api_key"
// variable. Each variable is tried both as declared and as
// NAME_API_KEY uppercased.
func ResolveAPIKey(explicit, baseURL string, lookup LookupFunc) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if baseURL == "" {
		return "", errors.New("api.base_url is required")
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	lower := strings.ToLower(baseURL)
	for _, p := range apiProviders {
		if !strings.Contains(lower, p.pattern) {
			continue
		}
		if key, ok := lookupKey(lookup, p.envVar); ok {
			return key, nil
		}
	}

	if m := domainPattern.FindStringSubmatch(lower); m != nil {
		if key, ok := lookupKey(lookup, m[1]); ok {
			return key, nil
		}
	}

	if key, ok := lookupKey(lookup, "api_key"); ok {
		return key, nil
	}

	return "", errors.Wrapf(ErrCredentialMissing, "base_url %q", baseURL)
}

func lookupKey(lookup LookupFunc, name string) (string, bool) {
	if v, ok := lookup(name); ok && v != "" {
		return v, true
	}
	upper := strings.ToUpper(name) + "_API_KEY"
	if v, ok := lookup(upper); ok && v != "" {
		return v, true
	}
	return "", false
}
