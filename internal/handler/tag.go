/**
 * 处理器:标签
 * @author: sun977
 * @date: 2025.11.21
 * @description: 标签列表与按标签查主机
 * @func: ListTags / ListHostsByTag
 */
package handler

import (
	"net/http"

	"neowatch/internal/service/host"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签接口处理器
type TagHandler struct {
	hostService *host.HostService
}

// NewTagHandler 创建标签处理器实例
func NewTagHandler(hostService *host.HostService) *TagHandler {
	return &TagHandler{
		hostService: hostService,
	}
}

// ListTags 查询全部标签名
// GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.hostService.ListTags(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// ListHostsByTag 查询携带指定标签的主机
// GET /api/tags/:tag/hosts
func (h *TagHandler) ListHostsByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		writeBadRequest(c, "invalid tag")
		return
	}

	hosts, err := h.hostService.ListHostsByTag(c.Request.Context(), tag)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, hosts)
}
