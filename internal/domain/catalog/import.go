// internal/domain/catalog/import.go
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/activity"
)

var (
	// ErrEmptyImport is returned when a CSV upload yields no importable rows
	ErrEmptyImport = errors.New("no importable rows in file")
	// ErrBadImportRow is returned when a CSV row fails validation
	ErrBadImportRow = errors.New("invalid import row")
)

// Row layout for bulk imports: group_id,total,name,price,photo. Rows whose
// first column is empty are treated as headers or padding and skipped.
const importColumns = 5

// ImportResult summarizes a completed bulk import
type ImportResult struct {
	Created int      `json:"created"`
	Codes   []string `json:"codes"`
}

// ImportInventoriesCSV parses a CSV stream and creates one inventory item per
// data row. All rows are validated first and created in a single transaction;
// one bad row rejects the whole file.
func (s *Service) ImportInventoriesCSV(actor activity.Actor, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var requests []*CreateInventoryRequest
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed csv: %v", ErrBadImportRow, err)
		}
		line++

		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "group_id") {
			continue
		}

		req, err := parseImportRow(record)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadImportRow, line, err)
		}
		requests = append(requests, req)
	}

	if len(requests) == 0 {
		return nil, ErrEmptyImport
	}

	for _, req := range requests {
		if req.GroupID != nil {
			if err := s.ensureGroupExists(s.db, *req.GroupID); err != nil {
				return nil, err
			}
		}
	}

	items := make([]*Inventory, 0, len(requests))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, req := range requests {
			item, txErr := s.createInventoryTx(tx, actor, req)
			if txErr != nil {
				return txErr
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Created: len(items), Codes: make([]string, 0, len(items))}
	for _, item := range items {
		result.Codes = append(result.Codes, item.Code)
		s.recorder.Record(actor, fmt.Sprintf("added new inventory item with code - '%s'", item.Code))
	}

	return result, nil
}

func parseImportRow(record []string) (*CreateInventoryRequest, error) {
	if len(record) < importColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", importColumns, len(record))
	}

	groupID, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q", record[0])
	}
	total, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
	if err != nil || total == 0 {
		return nil, fmt.Errorf("invalid total %q", record[1])
	}
	name := strings.TrimSpace(record[2])
	if name == "" {
		return nil, errors.New("name is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q", record[3])
	}

	gid := uint(groupID)
	return &CreateInventoryRequest{
		Name:    name,
		GroupID: &gid,
		Total:   uint(total),
		Price:   price,
		Photo:   strings.TrimSpace(record[4]),
	}, nil
}
