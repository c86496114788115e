// Package export renders rankings as XLSX workbooks for loot-council review.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/internal/domain/types"
)

// ContentType is the media type of the workbook written by WriteRanking.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheet = "Ranking"

var header = []string{
	"Rank", "Character", "Score", "DPS Gain", "Tier Bonus", "Ilvl Diff",
	"BIS", "Track Upgrade", "Already Owned", "Main",
}

// WriteRanking writes r as a single-sheet workbook to w.
func WriteRanking(w io.Writer, r types.Ranking) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("Loot %s (item %d)", r.LootID, r.ItemID)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"2", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range r.Entries {
		h := e.Highlights
		ilvl := any(h.IlvlDiff)
		if h.IlvlDiff == model.IlvlDiffNone {
			ilvl = ""
		}
		values := []any{
			e.Rank, e.CharacterName, e.Score, h.DPSGain, string(h.LootEnableTiersetBonus), ilvl,
			yesNo(h.GearIsBis), yesNo(h.IsTrackUpgrade), yesNo(h.AlreadyGotIt), yesNo(h.IsMain),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
