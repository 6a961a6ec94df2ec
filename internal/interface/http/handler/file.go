package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/dto"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// ErrMissingFile multipart请求中没有file字段
var ErrMissingFile = apperrors.New(apperrors.ErrCodeInvalidParams, "缺少上传文件")

// FileHandler 导入/导出HTTP处理器
type FileHandler struct {
	importItems    *inventory.ImportItemsUseCase
	exportItems    *inventory.ExportItemsUseCase
	maxUploadBytes int64
}

// NewFileHandler 创建导入导出处理器
func NewFileHandler(importItems *inventory.ImportItemsUseCase, exportItems *inventory.ExportItemsUseCase, maxUploadBytes int64) *FileHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &FileHandler{importItems: importItems, exportItems: exportItems, maxUploadBytes: maxUploadBytes}
}

// Import 导入CSV/XLSX并合并到目录
// @Summary      导入
// @Description  multipart字段file(按扩展名识别xlsx),或直接以CSV作为请求体;格式错误的行跳过
// @Tags         导入导出
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        file formData file false "CSV或XLSX文件"
// @Success      200 {object} response.Response{data=inventory.ImportItemsResponse}
// @Router       /api/v1/import [post]
func (h *FileHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	body, format, closeFn, err := h.openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	result, err := h.importItems.Execute(c.Request.Context(), inventory.ImportItemsRequest{
		Format: format,
		Body:   body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// openUpload 取出上传内容和格式
func (h *FileHandler) openUpload(c *gin.Context) (io.Reader, string, func(), error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		format := inventory.FormatCSV
		if strings.Contains(c.ContentType(), "spreadsheetml") {
			format = inventory.FormatXLSX
		}
		return c.Request.Body, format, func() {}, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", nil, ErrMissingFile.WithDetail(err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", nil, apperrors.Wrap(err, "读取上传文件失败")
	}

	format := inventory.FormatCSV
	if strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		format = inventory.FormatXLSX
	}
	return f, format, func() { _ = f.Close() }, nil
}

// Export 导出目录
// @Summary      导出
// @Description  文件名inventaire_YYYY-MM-DD.csv/.xlsx
// @Tags         导入导出
// @Produce      text/csv
// @Param        format query string false "csv|xlsx" default(csv)
// @Success      200 {file} file
// @Router       /api/v1/export [get]
func (h *FileHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.exportItems.Execute(c.Request.Context(), q.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}

// Template 导入模板
// @Summary      导入模板
// @Tags         导入导出
// @Produce      text/csv
// @Success      200 {file} file
// @Router       /api/v1/import/template [get]
func (h *FileHandler) Template(c *gin.Context) {
	file := h.exportItems.Template()
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}
