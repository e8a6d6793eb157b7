// internal/domain/activity/recorder_test.go
package activity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserActivity{}))
	return db
}

func testActor() Actor {
	return Actor{ID: 1, Email: "kim@example.com", FullName: "Kim Porter"}
}

func TestRecordAppendsOneEntry(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	recorder.Record(testActor(), "added new client - 'Acme'")

	var entries []UserActivity
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "added new client - 'Acme'", entries[0].Action)
	assert.Equal(t, "kim@example.com", entries[0].Email)
	assert.Equal(t, "Kim Porter", entries[0].FullName)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, uint(1), *entries[0].UserID)
}

func TestListNewestFirstWithPagination(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	for i := 0; i < 25; i++ {
		recorder.Record(testActor(), fmt.Sprintf("action %d", i))
	}

	page1, err := recorder.List(&ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Activities, 20)
	assert.Equal(t, int64(25), page1.Pagination.Total)
	assert.True(t, page1.Pagination.HasNext)

	page2, err := recorder.List(&ListRequest{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Activities, 5)
	assert.True(t, page2.Pagination.HasPrev)
}

func TestListKeywordSearch(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	recorder.Record(testActor(), "added new group - 'Stationery'")
	recorder.Record(testActor(), "logged in")

	res, err := recorder.List(&ListRequest{Page: 1, Keyword: "stationery"})
	require.NoError(t, err)
	require.Len(t, res.Activities, 1)
	assert.Contains(t, res.Activities[0].Action, "Stationery")
}
