package backup

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"inventaris/internal/core/types"
	"inventaris/internal/domain/reports"
)

// WriteWorkbook renders the dump as an Excel workbook: one sheet per
// relation plus a reconstructed balance report for the dump range.
func WriteWorkbook(w io.Writer, dump *Dump, report []reports.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeDivisionsSheet(f, dump); err != nil {
		return err
	}
	if err := writeGroupsSheet(f, dump); err != nil {
		return err
	}
	if err := writeItemsSheet(f, dump); err != nil {
		return err
	}
	if err := writeOpeningsSheet(f, dump); err != nil {
		return err
	}
	if err := writeTransactionsSheet(f, dump); err != nil {
		return err
	}
	if err := writeAdjustmentsSheet(f, dump); err != nil {
		return err
	}
	if err := writeReportSheet(f, dump, report); err != nil {
		return err
	}

	// excelize names the initial sheet "Sheet1"; drop it once real
	// sheets exist.
	f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func newSheet(f *excelize.File, name string, header []string) (*excelize.StreamWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return nil, fmt.Errorf("stream sheet %s: %w", name, err)
	}
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := sw.SetRow("A1", row); err != nil {
		return nil, fmt.Errorf("write header %s: %w", name, err)
	}
	return sw, nil
}

func writeRow(sw *excelize.StreamWriter, idx int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, idx)
	if err != nil {
		return err
	}
	return sw.SetRow(cell, cells)
}

func decimalCell(d types.Quantity) any {
	v, _ := d.Float64()
	return v
}

func optDecimalCell(d *types.Money) any {
	if d == nil {
		return nil
	}
	return decimalCell(*d)
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func writeDivisionsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Divisions", []string{"ID", "Name", "Description", "Created At"})
	if err != nil {
		return err
	}
	for i, d := range dump.Divisions {
		err = writeRow(sw, i+2, []any{d.ID.String(), d.Name, optString(d.Description), d.CreatedAt})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeGroupsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Groups", []string{"ID", "Division", "Name", "Description", "Created At"})
	if err != nil {
		return err
	}
	for i, g := range dump.Groups {
		err = writeRow(sw, i+2, []any{g.ID.String(), g.DivisionName, g.Name, optString(g.Description), g.CreatedAt})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeItemsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Items", []string{
		"ID", "SKU", "Division", "Group", "Name", "Unit", "Expiry", "Min Stock", "Created At",
	})
	if err != nil {
		return err
	}
	for i, it := range dump.Items {
		expiry := ""
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.String()
		}
		err = writeRow(sw, i+2, []any{
			it.ID.String(), it.SKU, it.DivisionName, it.GroupName, it.Name,
			optString(it.Unit), expiry, decimalCell(it.MinStock), it.CreatedAt,
		})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeOpeningsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Opening Balances", []string{
		"ID", "Item ID", "Date", "Qty", "Price Per Unit", "Note", "Created At",
	})
	if err != nil {
		return err
	}
	for i, o := range dump.Openings {
		err = writeRow(sw, i+2, []any{
			o.ID.String(), o.ItemID.String(), o.OpeningDate.String(),
			decimalCell(o.Qty), optDecimalCell(o.PricePerUnit), optString(o.Note), o.CreatedAt,
		})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeTransactionsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Transactions", []string{
		"ID", "Item ID", "Type", "Date", "Qty", "Price Per Unit", "Note", "Created At",
	})
	if err != nil {
		return err
	}
	for i, t := range dump.Transactions {
		err = writeRow(sw, i+2, []any{
			t.ID.String(), t.ItemID.String(), string(t.Type), t.TxnDate.String(),
			decimalCell(t.Qty), optDecimalCell(t.PricePerUnit), optString(t.Note), t.CreatedAt,
		})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeAdjustmentsSheet(f *excelize.File, dump *Dump) error {
	sw, err := newSheet(f, "Adjustments", []string{
		"ID", "Item ID", "Date", "Qty Delta", "Note", "Created At",
	})
	if err != nil {
		return err
	}
	for i, a := range dump.Adjustments {
		err = writeRow(sw, i+2, []any{
			a.ID.String(), a.ItemID.String(), a.AdjDate.String(),
			decimalCell(a.QtyDelta), optString(a.Note), a.CreatedAt,
		})
		if err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeReportSheet(f *excelize.File, dump *Dump, report []reports.Row) error {
	title := fmt.Sprintf("Report %s to %s", dump.Meta.Range.Start, dump.Meta.Range.End)
	sw, err := newSheet(f, "Report", []string{
		"Division", "Group", "Item", "Expiry", "Unit",
		"Opening", "Opening Resets", "In", "Out", "Adj", "Closing",
		"Price Per Unit", "Stock Value",
	})
	if err != nil {
		return err
	}
	for i, row := range report {
		expiry := ""
		if row.ExpiryDate != nil {
			expiry = row.ExpiryDate.String()
		}
		err = writeRow(sw, i+2, []any{
			row.DivisionName, row.GroupName, row.ItemName, expiry, optString(row.Unit),
			decimalCell(row.Opening), decimalCell(row.OpeningWindow),
			decimalCell(row.InQty), decimalCell(row.OutQty),
			decimalCell(row.AdjQty), decimalCell(row.Closing),
			optDecimalCell(row.PricePerUnit), optDecimalCell(row.StockValue),
		})
		if err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SetSheetName("Report", sheetNameFor(title))
}

// sheetNameFor clamps a title to Excel's 31-character sheet name limit.
func sheetNameFor(title string) string {
	const max = 31
	if len(title) <= max {
		return title
	}
	return title[:max]
}
