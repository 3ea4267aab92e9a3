package handler

import (
	"mime/multipart"

	"github.com/mygage/credit-report-service/dto"

	"github.com/gin-gonic/gin"
)

// parseStatementForm pulls the profile fields and the per-section file
// lists out of a multipart submission. Section file inputs are named
// after their section key, e.g. bank[] for bank statements.
func parseStatementForm(c *gin.Context) (dto.CustomerProfile, map[dto.SectionKey][]*multipart.FileHeader, error) {
	var req dto.StatementRequest
	if err := c.ShouldBind(&req); err != nil {
		return dto.CustomerProfile{}, nil, err
	}

	profile, err := req.Validate()
	if err != nil {
		return dto.CustomerProfile{}, nil, err
	}

	sections := make(map[dto.SectionKey][]*multipart.FileHeader, len(dto.SectionKeys()))
	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		for _, key := range dto.SectionKeys() {
			files := form.File[string(key)+"[]"]
			if len(files) == 0 {
				files = form.File[string(key)]
			}
			sections[key] = files
		}
	}

	return profile, sections, nil
}

// sendError writes a structured error response. The error field alone
// satisfies the {error: string} contract of the submission endpoints.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   message,
		Message: errorMsg,
		Code:    statusCode,
	})
}
