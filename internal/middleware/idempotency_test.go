package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idempotencyRecorder struct {
	handled  bool
	cacheKey string
	lockKey  string
}

func newIdempotencyRouter(rdb *redis.Client, rec *idempotencyRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payrolls",
		func(c *gin.Context) { c.Set("user_id", "user-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			rec.handled = true
			rec.cacheKey = c.GetString("idempotency_cache_key")
			rec.lockKey = c.GetString("idempotency_lock_key")
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r
}

func TestIdempotency(t *testing.T) {
	cacheKey := "idemp:/payrolls:user-1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("request without key passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		rec := &idempotencyRecorder{}
		router := newIdempotencyRouter(rdb, rec)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.True(t, rec.handled)
		assert.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh key takes the lock and proceeds", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		rec := &idempotencyRecorder{}
		router := newIdempotencyRouter(rdb, rec)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.True(t, rec.handled)
		assert.Equal(t, cacheKey, rec.cacheKey)
		assert.Equal(t, lockKey, rec.lockKey)
		assert.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cached response is replayed without the handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"id":"payroll-1"}`)

		rec := &idempotencyRecorder{}
		router := newIdempotencyRouter(rdb, rec)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.False(t, rec.handled)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "payroll-1")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected while the lock is held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		rec := &idempotencyRecorder{}
		router := newIdempotencyRouter(rdb, rec)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.False(t, rec.handled)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
