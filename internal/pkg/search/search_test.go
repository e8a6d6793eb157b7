// internal/pkg/search/search_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type record struct {
	ID   uint
	Name string
	Code string
}

func setupSearchDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&record{}))
	return db
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"blue", "pen"}, Terms("blue pen"))
	assert.Equal(t, []string{"blue pen", "box"}, Terms(`"blue pen" box`))
	assert.Empty(t, Terms("   "))
}

func TestApplyMatchesAnyColumnPerTerm(t *testing.T) {
	db := setupSearchDB(t)
	require.NoError(t, db.Create(&[]record{
		{Name: "Blue Pen", Code: "000001"},
		{Name: "Red Pen", Code: "000002"},
		{Name: "Blue Notebook", Code: "000003"},
	}).Error)

	var got []record
	err := Apply(db.Model(&record{}), "blue pen", "name", "code").Find(&got).Error
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blue Pen", got[0].Name)

	got = nil
	err = Apply(db.Model(&record{}), "000002", "name", "code").Find(&got).Error
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Red Pen", got[0].Name)
}

func TestApplyIsCaseInsensitive(t *testing.T) {
	db := setupSearchDB(t)
	require.NoError(t, db.Create(&record{Name: "Stapler"}).Error)

	var got []record
	err := Apply(db.Model(&record{}), "STAPLER", "name").Find(&got).Error
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
