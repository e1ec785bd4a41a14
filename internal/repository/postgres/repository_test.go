package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huc-prioritizer/internal/repository/dataset"
)

func TestNewIndicatorRepository_RejectsBadTableNames(t *testing.T) {
	db := NewDBForTest(nil, nil)

	_, err := NewIndicatorRepository(db, dataset.Tables{Excluded: "ok_table", Included: "bad table"})
	assert.Error(t, err)

	_, err = NewBoundaryRepository(db, "admin_boundaries;--")
	assert.Error(t, err)
}
