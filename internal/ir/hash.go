package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
)

// Domain prefixes for content digests. The version suffix enables future
// algorithm migration.
const (
	DomainResourceMap = "schemagraph/resources/v1"
	DomainResource    = "schemagraph/resource/v1"
)

// hashWithDomain computes SHA-256(domain + 0x00 + data). The null byte
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ResourceDigest returns the content digest of one resource.
func ResourceDigest(r Resource) (string, error) {
	canonical, err := MarshalCanonical(r)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", r.IRI(), err)
	}
	return hashWithDomain(DomainResource, canonical), nil
}

// Digest returns a content digest of a whole resource map. Two maps have the
// same digest exactly when they hold the same IRIs with equal content, so
// replay and round-trip checks compare digests instead of walking both maps.
func Digest(resources map[string]Resource) (string, error) {
	iris := make([]string, 0, len(resources))
	for iri := range resources {
		iris = append(iris, iri)
	}
	slices.Sort(iris)

	entries := make(map[string]string, len(iris))
	for _, iri := range iris {
		d, err := ResourceDigest(resources[iri])
		if err != nil {
			return "", err
		}
		entries[iri] = d
	}
	canonical, err := MarshalCanonical(entries)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainResourceMap, canonical), nil
}
