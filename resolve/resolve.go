/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package resolve fetches structural tables for chemical identifiers from
// an external structure resolver service. The rendering core never fetches
// anything itself; this is the thin glue in front of it.
package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultBaseURL is the public NCI structure resolver.
const DefaultBaseURL = "https://cactus.nci.nih.gov"

// aliases maps common trivial names to the identifier the resolver is
// happier with. Lookups are fuzzy, so near-miss spellings of these names
// still land on the right structure.
var aliases = map[string]string{
	"water":          "O",
	"benzene":        "c1ccccc1",
	"toluene":        "Cc1ccccc1",
	"phenol":         "Oc1ccccc1",
	"ethanol":        "CCO",
	"methanol":       "CO",
	"acetone":        "CC(=O)C",
	"acetic acid":    "CC(=O)O",
	"ammonia":        "N",
	"methane":        "C",
	"ethylene":       "C=C",
	"acetylene":      "C#C",
	"caffeine":       "Cn1cnc2c1c(=O)n(C)c(=O)n2C",
	"aspirin":        "CC(=O)Oc1ccccc1C(=O)O",
	"glucose":        "OCC1OC(O)C(O)C(O)C1O",
	"formaldehyde":   "C=O",
	"carbon dioxide": "O=C=O",
}

// aliasSimilarityThreshold is the minimum similarity for a fuzzy alias
// match. Below it the identifier is passed to the resolver untouched.
const aliasSimilarityThreshold = 0.88

// A Resolver turns a chemical name or line notation into molfile text by
// querying a structure resolver service.
type Resolver struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Molfile fetches the structural table for the identifier. The identifier
// is first normalized through the alias table; whatever survives is handed
// to the resolver service as-is.
func (r *Resolver) Molfile(ctx context.Context, identifier string) (string, error) {
	identifier = Canonical(identifier)

	u := r.baseURL + "/chemical/structure/" + url.PathEscape(identifier) + "/sdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build resolver request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query resolver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("no structure found for %q", identifier)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolver returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read resolver response: %w", err)
	}
	return string(body), nil
}

// Canonical maps a trivial name to its aliased identifier, tolerating
// small misspellings. Identifiers that look nothing like a known alias are
// returned unchanged.
func Canonical(identifier string) string {
	name := strings.ToLower(strings.TrimSpace(identifier))
	if smiles, ok := aliases[name]; ok {
		return smiles
	}

	jw := metrics.NewJaroWinkler()
	best := ""
	bestScore := 0.0
	for alias := range aliases {
		similarity := strutil.Similarity(name, alias, jw)
		if similarity > bestScore {
			best = alias
			bestScore = similarity
		}
	}
	if bestScore >= aliasSimilarityThreshold {
		slog.Debug("fuzzy alias match", "identifier", identifier, "alias", best, "similarity", bestScore)
		return aliases[best]
	}
	return identifier
}
