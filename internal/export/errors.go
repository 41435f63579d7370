package export

import "github.com/pkg/errors"

var (
	errNoData      = errors.New("export: scope selects no rows")
	errNoSelection = errors.New("export: no selection is active")
	errNoColumn    = errors.New("export: vertical cursor is not on a column")
	errNoTableName = errors.New("export: INSERT formats require a table name")
)
