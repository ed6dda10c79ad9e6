package handlers

import (
	"net/url"
	"strings"

	"github.com/brokeradda/adda-admin/internal/models"
)

// ImageProxyPath is where the image proxy is mounted.
const ImageProxyPath = "/api/image-proxy"

// IsDirectImageHost reports whether raw may be loaded by the browser as is.
// Each allowed entry is a host, optionally followed by a path prefix
// (e.g. "localhost:5000/uploads").
func IsDirectImageHost(raw string, allowed []string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	for _, entry := range allowed {
		host, prefix, _ := strings.Cut(strings.TrimSpace(entry), "/")
		if host == "" || !strings.EqualFold(u.Host, host) {
			continue
		}
		if prefix == "" || strings.HasPrefix(strings.TrimPrefix(u.Path, "/"), prefix) {
			return true
		}
	}
	return false
}

// ImageResolver rewrites remote image URLs that are not on the allow-list
// so they load through the image proxy.
type ImageResolver struct {
	Allowed   []string
	ProxyPath string
}

// Resolve returns raw unchanged when it is empty, relative or allowed, and
// the proxy URL otherwise.
func (r ImageResolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "data:") {
		return raw
	}
	if IsDirectImageHost(raw, r.Allowed) {
		return raw
	}
	proxy := r.ProxyPath
	if proxy == "" {
		proxy = ImageProxyPath
	}
	return proxy + "?url=" + url.QueryEscape(raw)
}

// ResolveImageURL is Resolve with the default proxy path.
func ResolveImageURL(raw string, allowed []string) string {
	return ImageResolver{Allowed: allowed}.Resolve(raw)
}

func (r ImageResolver) broker(b models.Broker) models.Broker {
	b.ProfileImage = r.Resolve(b.ProfileImage)
	b.KYCDocument = r.Resolve(b.KYCDocument)
	return b
}

func (r ImageResolver) property(p models.PropertyCard) models.PropertyCard {
	p.Image = r.Resolve(p.Image)
	if len(p.Images) > 0 {
		images := make([]string, len(p.Images))
		for i, img := range p.Images {
			images[i] = r.Resolve(img)
		}
		p.Images = images
	}
	return p
}
