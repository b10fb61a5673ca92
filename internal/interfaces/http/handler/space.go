package handler

import (
	"github.com/gin-gonic/gin"

	appSpace "github.com/feedify/backend/internal/application/space"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// SpaceHandler 空间处理器
type SpaceHandler struct {
	spaces *appSpace.Service
}

// NewSpaceHandler 创建空间处理器
func NewSpaceHandler(spaces *appSpace.Service) *SpaceHandler {
	return &SpaceHandler{spaces: spaces}
}

// List 列出当前用户的空间
// @Summary 空间列表
// @Tags 空间
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]appSpace.SpaceDTO}
// @Failure 401 {object} response.ErrorResponse
// @Router /spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	spaces, err := h.spaces.List(middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, spaces)
}

// Create 创建空间
// @Summary 创建空间
// @Tags 空间
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body appSpace.CreateSpaceDTO true "空间信息"
// @Success 201 {object} response.Response{data=appSpace.SpaceDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /spaces [post]
func (h *SpaceHandler) Create(c *gin.Context) {
	var dto appSpace.CreateSpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	sp, err := h.spaces.Create(middleware.UserID(c), &dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "New Space Created Successfully", sp)
}

// Heading 公开页面的空间标题
// @Summary 空间标题
// @Tags 公开
// @Produce json
// @Param username path string true "用户名"
// @Param space path string true "空间名"
// @Success 200 {object} response.Response{data=appSpace.HeadingDTO}
// @Failure 404 {object} response.ErrorResponse
// @Router /public/{username}/{space}/heading [get]
func (h *SpaceHandler) Heading(c *gin.Context) {
	heading, err := h.spaces.GetHeading(c.Param("username"), c.Param("space"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, heading)
}
