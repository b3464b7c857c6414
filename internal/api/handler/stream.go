package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/rahma-center/community-api/internal/drive"
	"github.com/rahma-center/community-api/internal/logger"
)

// StreamHandler proxies media bytes from the provider through this service, so
// clients never see provider URLs or the service-account token.
type StreamHandler struct {
	fs   drive.Client
	http *resty.Client
}

// NewStreamHandler creates a new streaming proxy handler.
func NewStreamHandler(fs drive.Client) *StreamHandler {
	return &StreamHandler{
		fs:   fs,
		http: resty.New(),
	}
}

// StreamImage handles GET /api/media/stream/:id for image files.
func (h *StreamHandler) StreamImage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file id"})
		return
	}
	if h.fs == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Media folder not configured"})
		return
	}

	ctx := c.Request.Context()

	meta, err := h.fs.GetFileMetadata(ctx, id)
	if err != nil {
		logger.CtxError(ctx, "stream: metadata lookup failed for %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream file"})
		return
	}
	if !strings.HasPrefix(meta.MimeType, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only images are supported by this endpoint"})
		return
	}

	token, err := h.fs.AccessToken(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream file"})
		return
	}

	resp, err := h.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetAuthToken(token).
		Get(drive.StreamURL(id))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream file"})
		return
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream file"})
		return
	}

	c.DataFromReader(http.StatusOK, resp.RawResponse.ContentLength, meta.MimeType, body, map[string]string{
		"Cache-Control": "public, s-maxage=300, stale-while-revalidate=600",
	})
}

// StreamVideo handles GET /api/media/stream-video/:id with HTTP Range
// passthrough so players can seek.
func (h *StreamHandler) StreamVideo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file id"})
		return
	}
	if h.fs == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Media folder not configured"})
		return
	}

	ctx := c.Request.Context()

	meta, err := h.fs.GetFileMetadata(ctx, id)
	if err != nil {
		logger.CtxError(ctx, "stream-video: metadata lookup failed for %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream video"})
		return
	}
	if !strings.HasPrefix(meta.MimeType, "video/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only videos are supported by this endpoint"})
		return
	}

	token, err := h.fs.AccessToken(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream video"})
		return
	}

	req := h.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetAuthToken(token)
	if rangeHeader := c.GetHeader("Range"); rangeHeader != "" {
		req.SetHeader("Range", rangeHeader)
	}

	resp, err := req.Get(drive.StreamURL(id))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream video"})
		return
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusPartialContent {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to stream video"})
		return
	}

	extra := map[string]string{
		"Cache-Control": "public, max-age=0, s-maxage=300",
		"Accept-Ranges": "bytes",
	}
	contentRange := resp.Header().Get("Content-Range")
	if contentRange != "" {
		extra["Content-Range"] = contentRange
	}

	status := http.StatusOK
	if resp.StatusCode() == http.StatusPartialContent || contentRange != "" {
		status = http.StatusPartialContent
	}

	c.DataFromReader(status, resp.RawResponse.ContentLength, meta.MimeType, body, extra)
}
