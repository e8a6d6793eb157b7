// internal/domain/catalog/import_test.go
package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/inventory-backend/internal/domain/activity"
)

func TestImportInventoriesCSV(t *testing.T) {
	svc, db := setupService(t)

	group, err := svc.CreateGroup(creatorActor(), &CreateGroupRequest{Name: "Imported"})
	require.NoError(t, err)

	csvData := fmt.Sprintf(
		"group_id,total,name,price,photo\n"+
			"%d,10,Monitor,220.50,monitor.png\n"+
			",,,,\n"+
			"%d,3,Desk Lamp,18,\n"+
			"%d,7,Mouse Pad,4.25,pad.png\n",
		group.ID, group.ID, group.ID,
	)

	result, err := svc.ImportInventoriesCSV(creatorActor(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Len(t, result.Codes, 3)

	var items []Inventory
	require.NoError(t, db.Order("id").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, "Monitor", items[0].Name)
	assert.Equal(t, uint(10), items[0].Remaining)
	assert.Equal(t, DisplayCode(items[0].ID), items[0].Code)
	assert.Equal(t, "Desk Lamp", items[1].Name)
	assert.Equal(t, "Mouse Pad", items[2].Name)

	var audits int64
	db.Model(&activity.UserActivity{}).
		Where("action LIKE ?", "added new inventory item with code%").Count(&audits)
	assert.Equal(t, int64(3), audits)
}

func TestImportInventoriesCSVRejectsBadRow(t *testing.T) {
	svc, db := setupService(t)

	group, err := svc.CreateGroup(creatorActor(), &CreateGroupRequest{Name: "Imported"})
	require.NoError(t, err)

	csvData := fmt.Sprintf(
		"%d,10,Monitor,220.50,monitor.png\n"+
			"%d,zero,Broken Row,18,\n",
		group.ID, group.ID,
	)

	_, err = svc.ImportInventoriesCSV(creatorActor(), strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	// Nothing from the file is created.
	var count int64
	db.Model(&Inventory{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestImportInventoriesCSVEmptyFile(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.ImportInventoriesCSV(creatorActor(), strings.NewReader(",,,,\n,,,,\n"))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = svc.ImportInventoriesCSV(creatorActor(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestImportInventoriesCSVUnknownGroup(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.ImportInventoriesCSV(creatorActor(), strings.NewReader("424242,5,Ghost,1.00,\n"))
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
