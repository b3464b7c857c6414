package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahma-center/community-api/internal/catalog"
	"github.com/rahma-center/community-api/internal/drive"
	"github.com/rahma-center/community-api/internal/logger"
)

const (
	minPageSize     = 1
	maxPageSize     = 50
	defaultPageSize = 20

	// Feed pages are CDN-cacheable for a short window with SWR.
	feedCacheControl = "public, s-maxage=60, stale-while-revalidate=120"
)

// MediaHandler serves the media feed and per-file metadata.
type MediaHandler struct {
	catalog      *catalog.Catalog
	resolver     *catalog.Resolver
	fs           drive.Client
	rootFolderID string
}

// NewMediaHandler creates a new media handler. fs may be nil when the service
// runs without Drive credentials; the endpoints then report misconfiguration.
func NewMediaHandler(cat *catalog.Catalog, resolver *catalog.Resolver, fs drive.Client, rootFolderID string) *MediaHandler {
	return &MediaHandler{
		catalog:      cat,
		resolver:     resolver,
		fs:           fs,
		rootFolderID: rootFolderID,
	}
}

func (h *MediaHandler) configured() bool {
	return h.fs != nil && h.rootFolderID != ""
}

// ListMedia handles GET /api/media?limit=20&category=spiritual&pageToken=...
func (h *MediaHandler) ListMedia(c *gin.Context) {
	if !h.configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Media folder not configured",
		})
		return
	}

	ctx := c.Request.Context()

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil {
		limit = defaultPageSize
	}
	if limit < minPageSize {
		limit = minPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	pageToken := c.Query("pageToken")
	category := strings.ToLower(c.Query("category"))
	if category == "all" {
		category = ""
	}

	// Map a requested category to its subfolder under the root; an unknown
	// category falls through to the root folder.
	effectiveFolderID := h.rootFolderID
	if category != "" {
		mapping, err := h.resolver.Resolve(ctx, h.rootFolderID)
		if err != nil {
			logger.CtxError(ctx, "failed to resolve category folders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Unable to fetch media list",
			})
			return
		}
		if folderID, ok := mapping[category]; ok {
			effectiveFolderID = folderID
		}
	}

	page := h.catalog.List(ctx, effectiveFolderID, limit, pageToken, category)

	logger.With(logger.Fields{
		logger.FieldFolderID: effectiveFolderID,
		logger.FieldCategory: category,
		logger.FieldCount:    len(page.Items),
	}).Info(ctx, "served media page: limit=%d", limit)

	c.Header("Cache-Control", feedCacheControl)
	c.JSON(http.StatusOK, page)
}

// GetMedia handles GET /api/media/:id and returns provider metadata plus the
// proxied stream and thumbnail locations for a single file.
func (h *MediaHandler) GetMedia(c *gin.Context) {
	if !h.configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Media folder not configured",
		})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Media ID is required",
		})
		return
	}

	meta, err := h.fs.GetFileMetadata(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Media not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          meta.ID,
		"mimeType":    meta.MimeType,
		"createdTime": meta.CreatedTime,
		"description": meta.Description,
		"duration":    meta.DurationSeconds,
		"streamUrl":   drive.StreamURL(id),
		"thumbnail":   meta.ThumbnailLink,
	})
}
