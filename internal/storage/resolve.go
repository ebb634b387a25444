// Package storage holds the product-photo object store and the pure
// photo-reference resolver used before hard deletes.
package storage

import (
	"net/url"
	"strings"
)

// PhotoBucket is the fixed bucket name for product photos.
const PhotoBucket = "product-photos"

// Kind classifies a photo reference. Exactly four outcomes — never ambiguous.
type Kind int

const (
	// KindNone: empty reference, nothing to delete.
	KindNone Kind = iota
	// KindExternal: absolute URL outside our storage — do not touch.
	KindExternal
	// KindInvalid: looks like a storage URL but wrong bucket or empty key.
	// Callers must fail closed: reject the delete before any mutation.
	KindInvalid
	// KindPath: a single resolvable object key inside PhotoBucket.
	KindPath
)

// Resolved is the outcome of ResolvePhotoRef. Path is set only for KindPath.
type Resolved struct {
	Kind Kind
	Path string
}

// ResolvePhotoRef maps a raw photo reference to the object key to delete.
//
// Absolute http(s) URLs are parsed for an "object" path segment followed by
// {mode}/{bucket}; a wrong bucket or empty remainder is invalid, and a URL
// without the segment (or that fails to parse) is external. Anything else is
// treated as a bucket-relative path with an optional "product-photos/"
// prefix and leading slashes stripped.
func ResolvePhotoRef(ref string) Resolved {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return Resolved{Kind: KindNone}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return Resolved{Kind: KindExternal}
		}
		segments := splitPath(u.Path)
		objectIdx := -1
		for i, s := range segments {
			if s == "object" {
				objectIdx = i
				break
			}
		}
		if objectIdx == -1 {
			return Resolved{Kind: KindExternal}
		}
		// object/{mode}/{bucket}/{key...}
		if objectIdx+2 >= len(segments) || segments[objectIdx+2] != PhotoBucket {
			return Resolved{Kind: KindInvalid}
		}
		key := strings.Join(segments[objectIdx+3:], "/")
		if key == "" {
			return Resolved{Kind: KindInvalid}
		}
		return Resolved{Kind: KindPath, Path: key}
	}

	normalized := strings.TrimPrefix(trimmed, PhotoBucket+"/")
	normalized = strings.TrimLeft(normalized, "/")
	if normalized == "" {
		return Resolved{Kind: KindNone}
	}
	return Resolved{Kind: KindPath, Path: normalized}
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
