package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// PresignProductImage handles POST /api/admin/products/uploads
func (uc *UploadController) PresignProductImage(c *gin.Context) {
	var req models.UploadRequest
	if !bindJSON(c, &req) {
		return
	}
	upload, err := uc.uploads.PresignProductImage(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
