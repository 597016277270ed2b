// Package blob turns stored document file references into URLs the portal
// can open.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// Resolver returns a URL for a stored file reference.
type Resolver interface {
	URL(ctx context.Context, fileReference string) (string, error)
}

// GCSResolver signs short-lived V4 GET URLs for objects in a bucket.
type GCSResolver struct {
	bucket     string
	accessID   string
	privateKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewGCSResolver(bucket, signerEmail, privateKey string, ttl time.Duration) (*GCSResolver, error) {
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if signerEmail == "" || privateKey == "" {
		return nil, errors.New("signer email and private key are required")
	}

	return &GCSResolver{
		bucket:     bucket,
		accessID:   signerEmail,
		privateKey: normalizePrivateKey(privateKey),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func (r *GCSResolver) URL(_ context.Context, fileReference string) (string, error) {
	object := strings.TrimPrefix(fileReference, "gs://"+r.bucket+"/")
	object = strings.TrimPrefix(object, "/")
	if object == "" {
		return "", errors.New("empty file reference")
	}

	signed, err := storage.SignedURL(r.bucket, object, &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		GoogleAccessID: r.accessID,
		PrivateKey:     r.privateKey,
		Expires:        r.now().Add(r.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", object, err)
	}
	return signed, nil
}

// env files usually carry the key with escaped newlines
func normalizePrivateKey(key string) []byte {
	return []byte(strings.ReplaceAll(key, "\\n", "\n"))
}

// StaticResolver joins references onto a public base URL. References that
// already are absolute URLs are returned unchanged.
type StaticResolver struct {
	baseURL string
}

func NewStaticResolver(baseURL string) *StaticResolver {
	return &StaticResolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (r *StaticResolver) URL(_ context.Context, fileReference string) (string, error) {
	if u, err := url.Parse(fileReference); err == nil && u.IsAbs() {
		return fileReference, nil
	}
	if r.baseURL == "" {
		return fileReference, nil
	}
	return r.baseURL + "/" + strings.TrimPrefix(fileReference, "/"), nil
}
