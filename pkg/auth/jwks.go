package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const jwksCacheSize = 4

// jwk is a single signing key as published by the provider's discovery
// endpoint. Only RSA fields are read; the source tokens are RS256.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// KeySource fetches the provider's signing-key set and resolves keys by kid.
// Fetched documents are cached with a TTL so a burst of requests does not
// hammer the discovery endpoint.
type KeySource struct {
	url    string
	client *http.Client
	cache  *expirable.LRU[string, jwksDocument]
}

// NewKeySource builds a key source for the given JWKS URL.
func NewKeySource(url string, cacheTTL time.Duration) *KeySource {
	return &KeySource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  expirable.NewLRU[string, jwksDocument](jwksCacheSize, nil, cacheTTL),
	}
}

// Key resolves the RSA public key for the given kid, fetching the key set
// when it is not cached. An unknown kid or an empty key set yields
// ErrKeyNotFound.
func (s *KeySource) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}
	for _, key := range doc.Keys {
		if key.Kid == kid {
			return key.publicKey()
		}
	}
	return nil, ErrKeyNotFound
}

func (s *KeySource) document(ctx context.Context) (jwksDocument, error) {
	if doc, ok := s.cache.Get(s.url); ok {
		return doc, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return jwksDocument{}, fmt.Errorf("building jwks request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return jwksDocument{}, fmt.Errorf("fetching jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return jwksDocument{}, fmt.Errorf("fetching jwks: unexpected status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return jwksDocument{}, fmt.Errorf("decoding jwks: %w", err)
	}

	s.cache.Add(s.url, doc)
	return doc, nil
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decoding key modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decoding key exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
