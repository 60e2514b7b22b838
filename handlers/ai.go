package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"carhub/services"

	"github.com/gin-gonic/gin"
)

// 圖片上限 5MB
const maxImageSize = 5 << 20

// ImageSearch 以圖搜車：上傳圖片，回傳 AI 辨識出的搜尋條件
func ImageSearch(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		log.Printf("Missing image file: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "請上傳圖片檔案", "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		ErrorResponse(c, http.StatusBadRequest, "圖片大小超過 5MB 限制", "image too large")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		ErrorResponse(c, http.StatusBadRequest, "僅接受圖片檔案", "unsupported content type")
		return
	}

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		log.Printf("Failed to read image: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "讀取圖片失敗", "failed to read image")
		return
	}

	guess, err := services.ClassifyCarImage(c.Request.Context(), imageData, mimeType)
	if err != nil {
		// 外部 API 的失敗（配額、格式錯誤）回報為上游錯誤，不讓請求崩潰
		log.Printf("Failed to classify car image: %v", err)
		ErrorResponse(c, http.StatusBadGateway, "影像辨識服務暫時無法使用", "image classification failed")
		return
	}

	SuccessResponse(c, http.StatusOK, "辨識成功", guess)
}
