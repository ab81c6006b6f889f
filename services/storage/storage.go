package storage

import (
	"strings"

	"roadguard/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// CloudinaryResolver treats non-URL references as Cloudinary public IDs.
type CloudinaryResolver struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryResolver creates a resolver. A nil client yields a passthrough resolver.
func NewCloudinaryResolver(cld *cloudinary.Cloudinary) ImageResolver {
	if cld == nil {
		return PassthroughResolver{}
	}
	cld.Config.URL.Secure = true
	return &CloudinaryResolver{cld: cld}
}

func (s *CloudinaryResolver) ResolveImageURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	img, err := s.cld.Image(ref)
	if err != nil {
		utils.GetLogger().Warn("CloudinaryResolver: failed to build asset", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	url, err := img.String()
	if err != nil {
		utils.GetLogger().Warn("CloudinaryResolver: failed to get URL string", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	return url
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:")
}

// ResolveAll maps ResolveImageURL over refs, dropping empty entries.
func ResolveAll(r ImageResolver, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if resolved := r.ResolveImageURL(ref); resolved != "" {
			out = append(out, resolved)
		}
	}
	return out
}
