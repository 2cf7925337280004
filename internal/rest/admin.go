package rest

import (
	"mime/multipart"
	"net/http"

	"storefront-be/internal/mail"
	"storefront-be/internal/metrics"
	"storefront-be/internal/nav"
	"storefront-be/internal/storage"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadMemory caps the multipart form held in memory; larger parts spill to disk.
const maxUploadMemory = 32 << 20

type settingsResponse struct {
	Settings
	Storefront []nav.Link `json:"storefront"`
	AdminMenu  []nav.Link `json:"adminMenu"`
}

type statsResponse struct {
	metrics.Snapshot
	Version string `json:"version"`
}

type deleteUploadRequest struct {
	URL string `json:"url" binding:"required"`
}

type testEmailRequest struct {
	To string `json:"to"`
}

func (h *Handler) AdminListUsers(c *gin.Context) {
	limit, page, err := paging(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Users.List(c.Request.Context(), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, res)
}

func (h *Handler) AdminSettings(c *gin.Context) {
	respondData(c, http.StatusOK, settingsResponse{
		Settings:   h.Settings,
		Storefront: nav.Storefront,
		AdminMenu:  nav.AdminMenu,
	})
}

func (h *Handler) AdminStats(c *gin.Context) {
	respondData(c, http.StatusOK, statsResponse{
		Snapshot: h.Metrics.Snapshot(),
		Version:  Version,
	})
}

// Upload accepts one or more images in the "files" form field (or a single
// "file") and returns their public URLs.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, storage.ErrFileRequired)
		return
	}
	defer func() { _ = form.RemoveAll() }()

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		respondError(c, storage.ErrFileRequired)
		return
	}

	files := make([]*storage.File, 0, len(headers))
	for _, fh := range headers {
		f, closeFn, err := openPart(fh)
		if err != nil {
			respondError(c, ErrInvalidForm)
			return
		}
		defer closeFn()
		files = append(files, f)
	}

	folder := c.PostForm("folder")
	urls, err := h.Storage.UploadMany(c.Request.Context(), files, h.Settings.Bucket, folder)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"urls": urls})
}

func openPart(fh *multipart.FileHeader) (*storage.File, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func (h *Handler) DeleteUpload(c *gin.Context) {
	var req deleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	deleted := h.Storage.Delete(c.Request.Context(), req.URL, h.Settings.Bucket)
	respondData(c, http.StatusOK, gin.H{"deleted": deleted})
}

// TestEmail sends the fixed test message. The mail result is returned as-is,
// so a relay failure is a 200 with success=false.
func (h *Handler) TestEmail(c *gin.Context) {
	var req testEmailRequest
	_ = c.ShouldBindJSON(&req)

	to := req.To
	if to == "" {
		to = utils.GetUserEmailFromContext(c.Request.Context())
	}

	res := h.Mail.SendTest(c.Request.Context(), to)
	status := http.StatusOK
	if !res.Success && (res.Error == mail.ErrRecipientRequired.Error() || res.Error == mail.ErrInvalidRecipient.Error()) {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}
