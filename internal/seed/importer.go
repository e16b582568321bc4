// Package seed loads the vocabulary corpus from an XLSX workbook into the
// words table.
package seed

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// WordInserter is the storage dependency of the importer.
type WordInserter interface {
	Insert(ctx context.Context, w *entities.Word) error
}

// Importer reads vocabulary rows from a workbook sheet. Expected columns:
// hebrew, transliteration, russian translation, CEFR level, frequency rank.
type Importer struct {
	words  WordInserter
	logger *zap.Logger
}

func New(words WordInserter, logger *zap.Logger) *Importer {
	return &Importer{words: words, logger: logger}
}

// Result summarizes one import run.
type Result struct {
	Processed int
	Inserted  int
	Skipped   int
}

// Import loads every word row from the first sheet of the workbook. Rows
// with missing required cells or an unknown level are skipped with a log
// line rather than aborting the run.
func (im *Importer) Import(ctx context.Context, path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	result := &Result{}

	for i, row := range rows {
		// Header row.
		if i == 0 {
			continue
		}
		result.Processed++

		word, err := parseRow(row)
		if err != nil {
			im.logger.Warn("skipping row",
				zap.Int("row", i+1),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}

		// Rows without an explicit rank keep their sheet order.
		if word.FrequencyRank == 0 {
			word.FrequencyRank = i
		}

		if err := im.words.Insert(ctx, word); err != nil {
			return result, fmt.Errorf("insert word %q: %w", word.Hebrew, err)
		}
		result.Inserted++
	}

	im.logger.Info("import finished",
		zap.Int("processed", result.Processed),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func parseRow(row []string) (*entities.Word, error) {
	hebrew := cell(row, 0)
	translit := cell(row, 1)
	russian := cell(row, 2)

	if hebrew == "" || russian == "" {
		return nil, fmt.Errorf("hebrew and russian cells are required")
	}

	level, err := entities.ParseLevel(cell(row, 3))
	if err != nil {
		return nil, err
	}

	var rank int
	if raw := cell(row, 4); raw != "" {
		rank, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("frequency rank %q: %w", raw, err)
		}
	}

	return &entities.Word{
		Hebrew:          hebrew,
		Transliteration: translit,
		Russian:         russian,
		Level:           level,
		FrequencyRank:   rank,
	}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
