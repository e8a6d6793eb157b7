// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/pkg/pagination"
	"github.com/your-org/inventory-backend/internal/pkg/search"
)

var (
	// ErrGroupNotFound is returned when an inventory group does not exist
	ErrGroupNotFound = errors.New("inventory group not found")
	// ErrItemNotFound is returned when an inventory item does not exist
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrGroupNameTaken is returned when a group name is already in use
	ErrGroupNameTaken = errors.New("group name already in use")
	// ErrGroupCycle is returned when a parent assignment would create a loop
	ErrGroupCycle = errors.New("group cannot belong to itself or its descendants")
)

// Service handles inventory and group business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	recorder *activity.Recorder
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		recorder: activity.NewRecorder(db),
	}
}

// GROUP MANAGEMENT

// CreateGroupRequest represents group creation data
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	BelongsToID *uint  `json:"belongs_to_id"`
}

// UpdateGroupRequest represents group update data
type UpdateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	BelongsToID *uint  `json:"belongs_to_id"`
}

// GroupListRequest represents group listing filters
type GroupListRequest struct {
	Page    int
	Keyword string
}

// GroupSummary is a group together with the number of items filed under it.
type GroupSummary struct {
	InventoryGroup
	TotalItems int64 `json:"total_items"`
}

// GroupListResponse represents a paginated group listing
type GroupListResponse struct {
	Groups     []GroupSummary        `json:"groups"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateGroup creates a new inventory group
func (s *Service) CreateGroup(actor activity.Actor, req *CreateGroupRequest) (*InventoryGroup, error) {
	var existing InventoryGroup
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrGroupNameTaken
	}

	if req.BelongsToID != nil {
		if err := s.ensureGroupExists(s.db, *req.BelongsToID); err != nil {
			return nil, err
		}
	}

	group := &InventoryGroup{
		Name:        req.Name,
		BelongsToID: req.BelongsToID,
		CreatedByID: &actor.ID,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("added new group - '%s'", group.Name))

	return group, nil
}

// GetGroup retrieves a group by ID
func (s *Service) GetGroup(id uint) (*InventoryGroup, error) {
	var group InventoryGroup
	err := s.db.Preload("BelongsTo").Preload("CreatedBy").First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// UpdateGroup updates a group's name and parent. Renames are captured in the
// activity log with both the old and the new name.
func (s *Service) UpdateGroup(actor activity.Actor, id uint, req *UpdateGroupRequest) (*InventoryGroup, error) {
	var group InventoryGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if req.Name != group.Name {
		var existing InventoryGroup
		if err := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing).Error; err == nil {
			return nil, ErrGroupNameTaken
		}
	}

	if req.BelongsToID != nil {
		if err := s.ensureGroupExists(s.db, *req.BelongsToID); err != nil {
			return nil, err
		}
		if err := s.ensureNoCycle(s.db, id, *req.BelongsToID); err != nil {
			return nil, err
		}
	}

	oldName := group.Name
	group.Name = req.Name
	group.BelongsToID = req.BelongsToID
	if err := s.db.Save(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	if oldName != group.Name {
		s.recorder.Record(actor, fmt.Sprintf("updated group from - '%s' to '%s'", oldName, group.Name))
	} else {
		s.recorder.Record(actor, fmt.Sprintf("updated group - '%s'", group.Name))
	}

	return &group, nil
}

// DeleteGroup deletes a group. Children and items keep existing with their
// group reference cleared.
func (s *Service) DeleteGroup(actor activity.Actor, id uint) error {
	var group InventoryGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&InventoryGroup{}).Where("belongs_to_id = ?", id).
			Update("belongs_to_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&Inventory{}).Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&InventoryGroup{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("deleted group - %s", group.Name))

	return nil
}

// ListGroups retrieves groups with pagination and keyword search
func (s *Service) ListGroups(req *GroupListRequest) (*GroupListResponse, error) {
	page := pagination.Normalize(req.Page)

	query := s.db.Model(&InventoryGroup{}).
		Joins("LEFT JOIN users ON users.id = inventory_groups.created_by_id")
	query = search.Apply(query, req.Keyword,
		"inventory_groups.name", "users.fullname", "users.email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}

	var groups []InventoryGroup
	err := query.Preload("BelongsTo").Preload("CreatedBy").
		Order("inventory_groups.created_at DESC").
		Offset(pagination.Offset(page)).Limit(pagination.DefaultPageSize).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	summaries, err := s.attachItemCounts(groups)
	if err != nil {
		return nil, err
	}

	return &GroupListResponse{
		Groups:     summaries,
		Pagination: pagination.Build(page, total),
	}, nil
}

func (s *Service) attachItemCounts(groups []InventoryGroup) ([]GroupSummary, error) {
	summaries := make([]GroupSummary, 0, len(groups))
	if len(groups) == 0 {
		return summaries, nil
	}

	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}

	type groupCount struct {
		GroupID uint
		Count   int64
	}
	var counts []groupCount
	err := s.db.Model(&Inventory{}).
		Select("group_id, COUNT(*) AS count").
		Where("group_id IN ?", ids).
		Group("group_id").
		Find(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count group items: %w", err)
	}

	byGroup := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byGroup[c.GroupID] = c.Count
	}
	for _, g := range groups {
		summaries = append(summaries, GroupSummary{
			InventoryGroup: g,
			TotalItems:     byGroup[g.ID],
		})
	}
	return summaries, nil
}

func (s *Service) ensureGroupExists(db *gorm.DB, id uint) error {
	var group InventoryGroup
	if err := db.Select("id").First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}
	return nil
}

// ensureNoCycle walks the parent chain from the proposed parent and fails if
// it reaches the group being updated.
func (s *Service) ensureNoCycle(db *gorm.DB, groupID, parentID uint) error {
	const maxDepth = 100

	current := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if current == groupID {
			return ErrGroupCycle
		}
		var parent InventoryGroup
		if err := db.Select("id", "belongs_to_id").First(&parent, current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk group parents: %w", err)
		}
		if parent.BelongsToID == nil {
			return nil
		}
		current = *parent.BelongsToID
	}
	return ErrGroupCycle
}

// ITEM MANAGEMENT

// CreateInventoryRequest represents inventory item creation data
type CreateInventoryRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	GroupID *uint   `json:"group_id"`
	Total   uint    `json:"total" binding:"required,min=1"`
	Price   float64 `json:"price" binding:"min=0"`
	Photo   string  `json:"photo"`
}

// UpdateInventoryRequest represents inventory item update data. Total,
// Remaining and Code are never updated through this path.
type UpdateInventoryRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	GroupID *uint   `json:"group_id"`
	Price   float64 `json:"price" binding:"min=0"`
	Photo   string  `json:"photo"`
}

// InventoryListRequest represents inventory listing filters
type InventoryListRequest struct {
	Page    int
	Keyword string
	GroupID *uint
}

// InventoryListResponse represents a paginated inventory listing
type InventoryListResponse struct {
	Items      []Inventory           `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateInventory creates a new inventory item. The item's code is derived
// from the assigned id inside the same transaction, so a row never becomes
// visible without one.
func (s *Service) CreateInventory(actor activity.Actor, req *CreateInventoryRequest) (*Inventory, error) {
	if req.GroupID != nil {
		if err := s.ensureGroupExists(s.db, *req.GroupID); err != nil {
			return nil, err
		}
	}

	var item *Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		item, txErr = s.createInventoryTx(tx, actor, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(actor, fmt.Sprintf("added new inventory item with code - '%s'", item.Code))

	return item, nil
}

// createInventoryTx inserts one item and assigns its code inside the given
// transaction. Callers record the activity after the transaction commits.
func (s *Service) createInventoryTx(tx *gorm.DB, actor activity.Actor, req *CreateInventoryRequest) (*Inventory, error) {
	item := &Inventory{
		Name:        req.Name,
		GroupID:     req.GroupID,
		Total:       req.Total,
		Remaining:   req.Total,
		Price:       req.Price,
		Photo:       req.Photo,
		CreatedByID: &actor.ID,
	}
	if err := tx.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	item.Code = DisplayCode(item.ID)
	if err := tx.Model(item).Update("code", item.Code).Error; err != nil {
		return nil, fmt.Errorf("failed to assign inventory code: %w", err)
	}

	return item, nil
}

// GetInventory retrieves an inventory item by ID
func (s *Service) GetInventory(id uint) (*Inventory, error) {
	var item Inventory
	err := s.db.Preload("Group").Preload("CreatedBy").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

// UpdateInventory updates an inventory item's descriptive fields
func (s *Service) UpdateInventory(actor activity.Actor, id uint, req *UpdateInventoryRequest) (*Inventory, error) {
	var item Inventory
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if req.GroupID != nil {
		if err := s.ensureGroupExists(s.db, *req.GroupID); err != nil {
			return nil, err
		}
	}

	item.Name = req.Name
	item.GroupID = req.GroupID
	item.Price = req.Price
	item.Photo = req.Photo
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("updated inventory item with code - '%s'", item.Code))

	return &item, nil
}

// DeleteInventory deletes an inventory item. Invoice lines that sold the item
// keep their snapshots; only their item reference is cleared.
func (s *Service) DeleteInventory(actor activity.Actor, id uint) error {
	var item Inventory
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to get inventory item: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("invoice_items").Where("item_id = ?", id).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Inventory{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.recorder.Record(actor, fmt.Sprintf("deleted inventory - %s", item.Code))

	return nil
}

// ListInventories retrieves inventory items with pagination, keyword search
// and an optional group filter
func (s *Service) ListInventories(req *InventoryListRequest) (*InventoryListResponse, error) {
	page := pagination.Normalize(req.Page)

	query := s.db.Model(&Inventory{}).
		Joins("LEFT JOIN users ON users.id = inventories.created_by_id").
		Joins("LEFT JOIN inventory_groups ON inventory_groups.id = inventories.group_id")
	if req.GroupID != nil {
		query = query.Where("inventories.group_id = ?", *req.GroupID)
	}
	query = search.Apply(query, req.Keyword,
		"inventories.code", "inventories.name",
		"inventory_groups.name", "users.fullname", "users.email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count inventory items: %w", err)
	}

	var items []Inventory
	err := query.Preload("Group").Preload("CreatedBy").
		Order("inventories.created_at DESC").
		Offset(pagination.Offset(page)).Limit(pagination.DefaultPageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	return &InventoryListResponse{
		Items:      items,
		Pagination: pagination.Build(page, total),
	}, nil
}
