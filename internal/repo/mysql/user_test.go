/**
 * 测试:用户数据访问层
 * @author: sun977
 * @date: 2025.11.21
 * @description: 用户仓储测试,覆盖邮箱唯一约束
 * @func:
 */
package mysql

import (
	"context"
	"testing"

	"neowatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	// 仓库层返回完整记录,哈希由上层负责屏蔽
	assert.Equal(t, "hash", byEmail.Password)
}

func TestUserRepository_NotFoundReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	byID, err := repo.GetUserByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, byID)

	byEmail, err := repo.GetUserByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &model.User{Name: "a", Email: "dup@example.com", Password: "h1"}))

	err := repo.CreateUser(ctx, &model.User{Name: "b", Email: "dup@example.com", Password: "h2"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// 相同值的更新在MySQL上影响行数为0,不得因此误报未找到
func TestUserRepository_UpdateSameValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.UpdateUser(ctx, user))

	got, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Name)
}

func TestUserRepository_UpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.UpdateUser(context.Background(), &model.User{ID: 4242, Name: "x", Email: "x@example.com", Password: "h"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteDetachesPings(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	hostRepo := NewHostRepository(db)
	pingRepo := NewPingRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, userRepo.CreateUser(ctx, user))

	host := &model.Host{Name: "web-1", Address: "127.0.0.1"}
	require.NoError(t, hostRepo.CreateHost(ctx, host, nil))

	ping := newTestPing(host.ID, 1)
	ping.UserID = &user.ID
	require.NoError(t, pingRepo.CreatePing(ctx, ping))

	require.NoError(t, userRepo.DeleteUser(ctx, user.ID))

	// 用户删除后探测历史保留,但触发人关联被清空
	got, err := pingRepo.ListPings(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].UserID)
}
