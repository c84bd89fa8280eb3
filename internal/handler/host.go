/**
 * 处理器:主机管理
 * @author: sun977
 * @date: 2025.11.21
 * @description: 主机的增删改查接口
 * @func: CreateHost / ListHosts / GetHost / UpdateHost / DeleteHost
 */
package handler

import (
	"net/http"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/pkg/utils"
	"neowatch/internal/service/host"

	"github.com/gin-gonic/gin"
)

// HostHandler 主机接口处理器
type HostHandler struct {
	hostService *host.HostService
}

// NewHostHandler 创建主机处理器实例
func NewHostHandler(hostService *host.HostService) *HostHandler {
	return &HostHandler{
		hostService: hostService,
	}
}

// CreateHost 创建主机
// POST /api/hosts
func (h *HostHandler) CreateHost(c *gin.Context) {
	var req model.CreateHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.hostService.CreateHost(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("create_host", utils.GetCurrentUserID(c), c.ClientIP(),
		c.GetString("request_id"), "success", "主机创建成功", map[string]interface{}{
			"host_id": resp.ID,
			"address": resp.Address,
		})

	c.JSON(http.StatusCreated, resp)
}

// ListHosts 查询主机列表,支持 name/tag 过滤
// GET /api/hosts?name=xx&tag=yy
func (h *HostHandler) ListHosts(c *gin.Context) {
	filter := &model.HostFilter{
		NameContains: c.Query("name"),
		TagContains:  c.Query("tag"),
	}

	hosts, err := h.hostService.ListHosts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, hosts)
}

// GetHost 查询单个主机
// GET /api/hosts/:hostId
func (h *HostHandler) GetHost(c *gin.Context) {
	id, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	resp, err := h.hostService.GetHost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateHost 更新主机,携带 tags 时整体替换标签集合
// PUT /api/hosts/:hostId
func (h *HostHandler) UpdateHost(c *gin.Context) {
	id, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	var req model.UpdateHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.hostService.UpdateHost(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("update_host", utils.GetCurrentUserID(c), c.ClientIP(),
		c.GetString("request_id"), "success", "主机更新成功", map[string]interface{}{
			"host_id": id,
		})

	c.JSON(http.StatusOK, resp)
}

// DeleteHost 删除主机及其关联标签和探测历史
// DELETE /api/hosts/:hostId
func (h *HostHandler) DeleteHost(c *gin.Context) {
	id, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	if err := h.hostService.DeleteHost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("delete_host", utils.GetCurrentUserID(c), c.ClientIP(),
		c.GetString("request_id"), "success", "主机删除成功", map[string]interface{}{
			"host_id": id,
		})

	c.Status(http.StatusNoContent)
}
