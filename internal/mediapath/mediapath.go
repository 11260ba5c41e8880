// Package mediapath turns stored media references into displayable URLs and
// back into storage object names.
//
// A stored reference is either an absolute URL (http://, https://, or a
// rooted path) or a storage-relative path such as "doctors/photo.jpg".
// Relative paths are served from a media base, which must carry at most one
// path segment (".../media" or ".../<bucket>") so that ObjectName can
// recover the key from a resolved URL.
package mediapath

import (
	"net/url"
	"strings"
)

// Placeholder is shown by public sections when an entity has no image.
const Placeholder = "/assets/placeholder.png"

const mediaPrefix = "media/"

// DeriveBase picks the media base URL. The order is fixed: explicit media
// base, then the API base origin + "/media", then the page origin +
// "/media", then "/media". The result never ends with a slash.
func DeriveBase(mediaBase, apiBase, pageOrigin string) string {
	if b := strings.TrimSpace(mediaBase); b != "" {
		return strings.TrimRight(b, "/")
	}
	if o := origin(apiBase); o != "" {
		return o + "/media"
	}
	if o := origin(pageOrigin); o != "" {
		return o + "/media"
	}
	return "/media"
}

func origin(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// IsAbsolute reports whether p is used as-is for display.
func IsAbsolute(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(p, "/")
}

// Strip removes one leading slash and one leading "media/" segment.
func Strip(p string) string {
	p = strings.TrimPrefix(p, "/")
	return strings.TrimPrefix(p, mediaPrefix)
}

// Resolver maps stored references to URLs against a fixed base.
type Resolver struct {
	base  string
	empty string
}

// NewPublic returns the resolver used by public sections: an empty
// reference resolves to Placeholder.
func NewPublic(base string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/"), empty: Placeholder}
}

// NewPreview returns the resolver used by admin previews: an empty
// reference resolves to "" (no preview).
func NewPreview(base string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/"), empty: ""}
}

func (r *Resolver) Base() string { return r.base }

func (r *Resolver) Resolve(p string) string {
	if p == "" {
		return r.empty
	}
	if IsAbsolute(p) {
		return p
	}
	return r.base + "/" + Strip(p)
}

// ObjectName derives the storage key from a stored reference or a resolved
// URL. It is a heuristic, not a URL parser:
//
//   - "" -> ""
//   - "https://host/bucket/a/b.jpg" -> "a/b.jpg" (host and bucket marker dropped)
//   - "/media/a/b.jpg" -> "a/b.jpg" (bucket marker dropped)
//   - "media/a/b.jpg", "a/b.jpg" -> "a/b.jpg" (already a key)
//   - anything without a recoverable bucket marker is returned unchanged.
func ObjectName(ref string) string {
	if ref == "" {
		return ""
	}

	rest, hadScheme := trimScheme(ref)
	parts := strings.Split(rest, "/")
	if len(parts) <= 1 {
		return ref
	}

	switch {
	case hadScheme || parts[0] == "":
		// parts[0] is the host (or empty for a rooted path),
		// parts[1] the bucket marker.
		if len(parts) < 3 {
			return ref
		}
		key := strings.Join(parts[2:], "/")
		if key == "" {
			return ref
		}
		return key
	default:
		return strings.TrimPrefix(rest, mediaPrefix)
	}
}

func trimScheme(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(lower, scheme) {
			return s[len(scheme):], true
		}
	}
	return s, false
}
