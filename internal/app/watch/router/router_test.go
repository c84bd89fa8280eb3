/**
 * 测试:路由集成测试
 * @author: sun977
 * @date: 2025.11.21
 * @description: 贯穿注册、登录、主机管理全链路的HTTP接口测试
 * @func:
 */
package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neowatch/internal/config"
	"neowatch/internal/model"
	"neowatch/internal/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Security.JWT.Secret = "router-test-secret-0123456789"
	cfg.Security.JWT.Issuer = "neowatch-test"
	cfg.Security.JWT.AccessTokenExpire = time.Hour
	cfg.Probe.MaxConcurrent = 2
	cfg.Probe.MaxCount = 10
	cfg.Probe.Timeout = 2 * time.Second
	return cfg
}

func newTestRouter(t *testing.T) (*Router, *gorm.DB) {
	t.Helper()

	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Host{},
		&model.Tag{},
		&model.HostTag{},
		&model.Ping{},
		&model.Icmp{},
		&model.Stats{},
	))

	r := NewRouter(db, nil, newTestConfig())
	r.SetupRoutes()
	return r, db
}

// doJSON 发送一次JSON请求并返回响应记录器
func doJSON(r *Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

// signUpAndIn 注册一个用户并换取令牌
func signUpAndIn(t *testing.T, r *Router) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/signin", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.SignInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Auth)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_RegisterResponseOmitsPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestRouter_RegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := map[string]string{"name": "alice", "email": "dup@example.com", "password": "secret123"}
	w := doJSON(r, http.MethodPost, "/api/users", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestRouter_RegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{"name": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_SignInFailureIsGeneric(t *testing.T) {
	r, _ := newTestRouter(t)
	_ = signUpAndIn(t, r)

	wUnknown := doJSON(r, http.MethodPost, "/api/signin", "", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	})
	wWrong := doJSON(r, http.MethodPost, "/api/signin", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	// 两种失败的响应体一致,不泄露邮箱是否注册
	assert.JSONEq(t, wUnknown.Body.String(), wWrong.Body.String())
}

func TestRouter_HostRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/hosts"},
		{http.MethodPost, "/api/hosts"},
		{http.MethodGet, "/api/pings"},
		{http.MethodGet, "/api/tags"},
		{http.MethodGet, "/api/users/me"},
	} {
		w := doJSON(r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_TamperedTokenRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodGet, "/api/users/me", token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_MeOmitsPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestRouter_HostCRUD(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	// 创建
	w := doJSON(r, http.MethodPost, "/api/hosts", token, map[string]interface{}{
		"name":    "web-1",
		"address": "10.0.0.1",
		"tags":    []string{"prod", "web"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	assert.ElementsMatch(t, []string{"prod", "web"}, created.Tags)

	hostPath := fmt.Sprintf("/api/hosts/%d", created.ID)

	// 查询
	w = doJSON(r, http.MethodGet, hostPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 更新并替换标签
	w = doJSON(r, http.MethodPut, hostPath, token, map[string]interface{}{
		"name":    "web-1b",
		"address": "10.0.0.9",
		"tags":    []string{"staging"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "web-1b", updated.Name)
	assert.Equal(t, []string{"staging"}, updated.Tags)

	// 过滤查询
	w = doJSON(r, http.MethodGet, "/api/hosts?tag=staging", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	// 删除返回204且无响应体
	w = doJSON(r, http.MethodDelete, hostPath, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// 删除后查询404
	w = doJSON(r, http.MethodGet, hostPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 重复删除404
	w = doJSON(r, http.MethodDelete, hostPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_HostValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodPost, "/api/hosts", token, map[string]interface{}{"name": "web-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "address")
}

func TestRouter_TagRoutes(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodPost, "/api/hosts", token, map[string]interface{}{
		"name": "web-1", "address": "10.0.0.1", "tags": []string{"prod"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	assert.Equal(t, []string{"prod"}, tags)

	w = doJSON(r, http.MethodGet, "/api/tags/prod/hosts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hosts []model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hosts))
	assert.Len(t, hosts, 1)
}

func TestRouter_PingHistoryRoutes(t *testing.T) {
	r, db := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodPost, "/api/hosts", token, map[string]interface{}{
		"name": "web-1", "address": "10.0.0.1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 未探测过的主机,历史为空,最近一次为404
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/hosts/%d/pings", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/hosts/%d/pings/latest", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 直接写入一条历史后可查询
	ping := &model.Ping{
		IP:     "10.0.0.1",
		HostID: created.ID,
		Icmps:  []model.Icmp{{Seq: 0, TTL: 64, Time: 0.5}},
		Stats:  &model.Stats{Transmitted: 1, Received: 1},
	}
	require.NoError(t, db.Create(ping).Error)

	w = doJSON(r, http.MethodGet, "/api/pings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pings []model.Ping
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pings))
	assert.Len(t, pings, 1)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/hosts/%d/pings/latest", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProbeUnknownHostID(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodPost, "/api/hosts/4242/pings/3", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ProbeCountValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(r, http.MethodPost, "/api/hosts", token, map[string]interface{}{
		"name": "local", "address": "127.0.0.1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/hosts/%d/pings/0", created.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/hosts/%d/pings/999", created.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_NoRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}

func TestRouter_HealthRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
