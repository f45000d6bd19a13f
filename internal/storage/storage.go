// Package storage resolves where a generated NFT image is published.
// No image bytes are produced here; locators only compute stable public URLs.
package storage

import (
	"context"
	"strings"
)

// ImageLocator maps a record id to the public URL of its image.
// ImageURL must be deterministic and contain the id.
type ImageLocator interface {
	ImageURL(id string) string
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// imageKey is the object key of a record's image inside a bucket or under a base URL.
func imageKey(id string) string {
	return "nft/" + id + ".png"
}

type staticLocator struct {
	baseURL string
}

// NewStatic returns a locator serving images under baseURL, e.g. https://example.com/nft/<id>.png.
func NewStatic(baseURL string) ImageLocator {
	return &staticLocator{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *staticLocator) ImageURL(id string) string {
	return s.baseURL + "/" + imageKey(id)
}

func (s *staticLocator) Ping(context.Context) error {
	return nil
}
