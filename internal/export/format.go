package export

// Format selects how exported rows are serialized (spec.md §4.7).
// CopyLineExtended is not user-selectable directly; it is what
// ExtendedCurrentLine forces regardless of the requested Format, mirroring
// `original_source/src/export.c`'s `copy_line_extended` flag overriding the
// configured clipboard format for that one command.
type Format int

const (
	Text Format = iota
	Csv
	TsvC
	PipeSeparated
	SqlValues
	Insert
	InsertWithComments
	CopyLineExtended
)

func (f Format) isInsert() bool {
	return f == Insert || f == InsertWithComments
}

func (f Format) isMultiline() bool {
	return f != Text
}
