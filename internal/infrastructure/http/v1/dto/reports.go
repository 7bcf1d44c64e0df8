package dto

// ReportQuery for GET /reports/stock.
type ReportQuery struct {
	Start   string `form:"start" binding:"required"`
	End     string `form:"end" binding:"required"`
	Grouped bool   `form:"grouped"`
}

// LedgerQuery for GET /reports/mutations.
type LedgerQuery struct {
	Start  string `form:"start" binding:"required"`
	End    string `form:"end" binding:"required"`
	ItemID string `form:"itemId" binding:"omitempty,uuid"`
}

// BackupQuery for backup downloads. Empty bounds default to full
// history up to today.
type BackupQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// RebuildRequest for POST /rebuild. Confirm must carry the exact
// confirmation phrase; the cutover is destructive and not undoable.
type RebuildRequest struct {
	Cutoff  string `json:"cutoff" binding:"required"`
	Confirm string `json:"confirm" binding:"required"`
}
