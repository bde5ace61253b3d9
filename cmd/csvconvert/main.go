// Command csvconvert converts an Excel workbook to the CSV format the
// analytics pipeline ingests. Only the first sheet is converted; rows are
// streamed so workbook size is not bounded by memory.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	input := flag.String("input", "", "input .xlsx file")
	output := flag.String("output", "", "output .csv file")
	flag.Parse()

	if *input == "" || *output == "" {
		flag.Usage()
		return fmt.Errorf("both -input and -output are required")
	}

	workbook, err := excelize.OpenFile(*input)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.Rows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	out, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	bar := progressbar.Default(-1, "converting rows")
	count := 0

	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row %d: %w", count+1, err)
		}
		if isEmptyRow(record) {
			continue
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", count+1, err)
		}
		count++
		bar.Add(1)
	}
	if err := rows.Error(); err != nil {
		return fmt.Errorf("row iteration failed: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	bar.Finish()

	fmt.Printf("\nconverted %d rows from %s to %s\n", count, *input, *output)
	return nil
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
