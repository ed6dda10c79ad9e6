package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

const (
	defaultImageType    = "image/jpeg"
	imageCacheControl   = "public, max-age=31536000"
	defaultImageMaxSize = 10 << 20
)

var errImageTooLarge = errors.New("image exceeds size limit")

// ImageRecorder counts proxy outcomes. *metrics.Metrics satisfies it.
type ImageRecorder interface {
	RecordImage(result string, n int)
}

// ImageProxyOptions configures the image proxy.
type ImageProxyOptions struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
	Recorder  ImageRecorder
}

// ImageProxyHandler relays remote images through the server so the
// dashboard can load them same-origin.
type ImageProxyHandler struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	rec       ImageRecorder
	group     singleflight.Group
}

type proxiedImage struct {
	body        []byte
	contentType string
}

// NewImageProxyHandler creates a new image proxy handler
func NewImageProxyHandler(opts ImageProxyOptions) *ImageProxyHandler {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultImageMaxSize
	}
	return &ImageProxyHandler{
		client:    opts.Client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		rec:       opts.Recorder,
	}
}

// Serve handles GET /api/image-proxy?url=<abs>&download=true
func (h *ImageProxyHandler) Serve(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		h.record("bad_request", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}
	download := c.Query("download") == "true"

	var (
		img    *proxiedImage
		err    error
		shared bool
	)
	if download {
		img, err = h.fetch(c.Request.Context(), raw)
	} else {
		// identical concurrent requests share one upstream fetch, which must
		// outlive whichever caller started it
		ctx := context.WithoutCancel(c.Request.Context())
		var v any
		v, err, shared = h.group.Do(raw, func() (any, error) {
			return h.fetch(ctx, raw)
		})
		if err == nil {
			img = v.(*proxiedImage)
		}
	}
	if err != nil {
		logger.Ctx(c.Request.Context()).Warn("image proxy fetch failed",
			logger.String("url", raw),
			logger.Err(err),
		)
		h.record("upstream_error", 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch image"})
		return
	}

	result := "ok"
	if shared {
		result = "shared"
	}
	h.record(result, len(img.body))

	hdr := c.Writer.Header()
	hdr.Del("Pragma")
	hdr.Del("Expires")
	hdr.Del("Access-Control-Allow-Credentials")
	hdr.Set("Cache-Control", imageCacheControl)
	hdr.Set("Access-Control-Allow-Origin", "*")
	if download {
		hdr.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, imageFilename(raw)))
	}
	c.Data(http.StatusOK, img.contentType, img.body)
}

func (h *ImageProxyHandler) fetch(ctx context.Context, raw string) (*proxiedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, errImageTooLarge
	}

	return &proxiedImage{body: body, contentType: imageContentType(resp.Header.Get("Content-Type"), body)}, nil
}

func (h *ImageProxyHandler) record(result string, n int) {
	if h.rec != nil {
		h.rec.RecordImage(result, n)
	}
}

// imageContentType prefers the upstream header, then a sniffed image type,
// then image/jpeg.
func imageContentType(header string, body []byte) string {
	if header = strings.TrimSpace(header); header != "" {
		return header
	}
	if mt := mimetype.Detect(body); strings.HasPrefix(mt.String(), "image/") {
		return mt.String()
	}
	return defaultImageType
}

// imageFilename is the last path segment of the source URL.
func imageFilename(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return strings.ReplaceAll(name, `"`, "")
}
