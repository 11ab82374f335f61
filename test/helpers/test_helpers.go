package helpers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/internal/repository"
	"github.com/finlog/expense-ledger/pkg/pg"
	"github.com/finlog/expense-ledger/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.CategoryEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

// SetupTestRedis starts an in-process redis and returns an adapter bound to
// it. The connection name carries the test name so parallel tests never
// share a stale adapter from the singleton map.
func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter("test-"+t.Name(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestCategory(t *testing.T, db *pg.DB, name string) *repository.CategoryEntity {
	ctx := context.Background()
	cat := &repository.CategoryEntity{
		Name: name,
	}
	err := db.Write(ctx).Create(cat).Error
	require.NoError(t, err)
	return cat
}

func CreateTestTransaction(t *testing.T, db *pg.DB, userID int64, amount model.Cents, date time.Time, isIncome bool) *repository.TransactionEntity {
	ctx := context.Background()
	txn := &repository.TransactionEntity{
		UserID:   userID,
		Amount:   int64(amount),
		Date:     model.Day(date),
		Method:   "card",
		IsIncome: isIncome,
	}
	err := db.Write(ctx).Create(txn).Error
	require.NoError(t, err)
	return txn
}

func Ptr[T any](v T) *T {
	return &v
}
