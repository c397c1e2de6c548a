package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldExtractor  = "extractor"
	FieldFormat     = "format"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"

	// Ledger scanning
	FieldLine     = "line"
	FieldBlock    = "block_date"
	FieldTxnType  = "txn_type"
	FieldBillNo   = "bill_no"
	FieldAmount   = "amount"
	FieldItem     = "item"
	FieldCategory = "category"
	FieldStrategy = "strategy"
	FieldNote     = "note"

	// Reconciliation and batch
	FieldDifference = "difference"
	FieldTolerance  = "tolerance"
	FieldMonth      = "month"
	FieldWorkers    = "workers"
)

// Log output formats accepted by NewLogrusAdapter.
const (
	FormatText = "text"
	FormatJSON = "json"
)
