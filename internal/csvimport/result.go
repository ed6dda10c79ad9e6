package csvimport

import (
	"fmt"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/models"
)

var (
	summaryPaths  = []string{"summary", "data.summary", "result.summary"}
	importedPaths = []string{"imported", "data.imported", "successful", "data.successful"}
	failedPaths   = []string{"failedRows", "data.failedRows", "failed", "errors", "data.failed", "data.errors"}
	messagePaths  = []string{"message", "data.message", "result.message"}
	rowErrorPaths = []string{"error", "message", "reason", "errors.0"}
	rowLabelPaths = []string{"name", "customerName", "title", "phone", "email", "id", "_id"}

	summaryTotalPaths    = []string{"totalRows", "total", "total_rows", "processed"}
	summaryImportedPaths = []string{"successfulImports", "imported", "successful", "success", "inserted", "created"}
	summaryFailedPaths   = []string{"failedImports", "failed", "failedCount", "errors", "skipped"}
)

// ParseResult normalizes an import response. A summary object wins; without
// one the counts come from the imported and failed entries, which may be
// numbers or lists.
func ParseResult(body []byte) models.ImportResult {
	v := envelope.Decode(body)
	res := models.ImportResult{
		Message:      envelope.StringOr(v, "", messagePaths...),
		ImportedRows: importedRows(v),
		Errors:       rowErrors(v),
	}

	if summary, ok := envelope.Object(v, summaryPaths...); ok {
		res.Total, _ = envelope.Int(summary, summaryTotalPaths...)
		res.Imported, _ = envelope.Int(summary, summaryImportedPaths...)
		res.Failed, _ = envelope.Int(summary, summaryFailedPaths...)
		if res.Imported == 0 {
			res.Imported = len(res.ImportedRows)
		}
		if res.Failed == 0 {
			res.Failed = len(res.Errors)
		}
		if res.Total == 0 {
			res.Total = res.Imported + res.Failed
		}
		return res
	}

	res.Imported = count(v, importedPaths)
	res.Failed = count(v, failedPaths)
	if res.Failed < len(res.Errors) {
		res.Failed = len(res.Errors)
	}
	res.Total = res.Imported + res.Failed
	return res
}

// count reads the first candidate as a number or as a list length.
func count(v any, paths []string) int {
	r := envelope.Lookup(v, paths...)
	if !r.Found {
		return 0
	}
	if arr, ok := r.Value.([]any); ok {
		return len(arr)
	}
	n, _ := envelope.Int(r.Value, "")
	return n
}

// importedRows labels each imported entry by its first identifying field.
func importedRows(v any) []string {
	arr := envelope.First(v, func(x any) bool { _, ok := x.([]any); return ok }, importedPaths...)
	if !arr.Found {
		return nil
	}

	var out []string
	for _, el := range arr.Value.([]any) {
		label, ok := envelope.String(el, "")
		if !ok {
			label, ok = envelope.String(el, rowLabelPaths...)
		}
		if ok {
			out = append(out, label)
		}
	}
	return out
}

// rowErrors renders the failed entries as messages, prefixing the row number
// when the backend sends one.
func rowErrors(v any) []string {
	arr := envelope.First(v, func(x any) bool { _, ok := x.([]any); return ok }, failedPaths...)
	if !arr.Found {
		return nil
	}

	var out []string
	for _, el := range arr.Value.([]any) {
		msg, ok := envelope.String(el, "")
		if !ok {
			msg, ok = envelope.String(el, rowErrorPaths...)
		}
		if !ok {
			continue
		}
		if row, ok := envelope.Int(el, "row", "rowNumber", "line"); ok {
			msg = fmt.Sprintf("Row %d: %s", row, msg)
		}
		out = append(out, msg)
	}
	return out
}
