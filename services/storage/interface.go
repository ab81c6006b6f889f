package storage

// ImageResolver turns a stored image reference into something a browser can load.
// Uploads happen client-side; the backend only stores and resolves references.
type ImageResolver interface {
	ResolveImageURL(ref string) string
}

// PassthroughResolver returns references unchanged.
type PassthroughResolver struct{}

func (PassthroughResolver) ResolveImageURL(ref string) string { return ref }
