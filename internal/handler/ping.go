/**
 * 处理器:探测与历史记录
 * @author: sun977
 * @date: 2025.11.21
 * @description: 发起主机探测、查询探测历史
 * @func: RunProbe / ListHostPings / GetLatestHostPing / ListPings
 */
package handler

import (
	"net/http"
	"strconv"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/pkg/utils"
	"neowatch/internal/service/probe"

	"github.com/gin-gonic/gin"
)

// PingHandler 探测接口处理器
type PingHandler struct {
	probeService *probe.ProbeService
}

// NewPingHandler 创建探测处理器实例
func NewPingHandler(probeService *probe.ProbeService) *PingHandler {
	return &PingHandler{
		probeService: probeService,
	}
}

// RunProbe 对指定主机发起 count 次探测并落库
// POST /api/hosts/:hostId/pings/:count
func (h *PingHandler) RunProbe(c *gin.Context) {
	hostID, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		writeBadRequest(c, "invalid count")
		return
	}

	// 已认证请求把发起人记到探测记录上,公开变体下为空
	var userID *uint
	if uid := utils.GetCurrentUserID(c); uid > 0 {
		userID = &uid
	}

	ping, err := h.probeService.RunProbe(c.Request.Context(), hostID, count, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("run_probe", utils.GetCurrentUserID(c), c.ClientIP(),
		c.GetString("request_id"), "success", "主机探测完成", map[string]interface{}{
			"host_id": hostID,
			"count":   count,
			"lost":    ping.Stats.Lost,
		})

	c.JSON(http.StatusOK, ping)
}

// ListHostPings 查询某主机的探测历史,按创建时间正序
// GET /api/hosts/:hostId/pings
func (h *PingHandler) ListHostPings(c *gin.Context) {
	hostID, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	pings, err := h.probeService.ListPingsByHost(c.Request.Context(), hostID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pings)
}

// GetLatestHostPing 查询某主机最近一次探测结果(优先走缓存)
// GET /api/hosts/:hostId/pings/latest
func (h *PingHandler) GetLatestHostPing(c *gin.Context) {
	hostID, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	ping, err := h.probeService.GetLatestPing(c.Request.Context(), hostID)
	if err != nil {
		writeError(c, err)
		return
	}
	if ping == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "no ping recorded for host"})
		return
	}

	c.JSON(http.StatusOK, ping)
}

// ListPings 查询全量探测历史
// GET /api/pings
func (h *PingHandler) ListPings(c *gin.Context) {
	pings, err := h.probeService.ListPings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pings)
}
