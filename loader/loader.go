// Package loader reads the sales and registrant tables from a workbook, from
// CSV files or from JSON row batches.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/xuri/excelize/v2"
)

var log = logging.MustGetLogger("log")

// Source is what a load produced. Warnings hold the problems the load
// recovered from, such as a missing registrant sheet.
type Source struct {
	Sales       *ic.RowsBatch
	Registrants *ic.RowsBatch
	Warnings    []error
}

func emptySource() Source {
	return Source{
		Sales:       ic.NewRowsBatch(nil, nil),
		Registrants: ic.NewRowsBatch(nil, nil),
	}
}

func (s *Source) warn(err error) {
	log.Warningf("%v", err)
	s.Warnings = append(s.Warnings, err)
}

type Options struct {
	SalesSheet       string
	RegistrantsSheet string
	// RegistrantsPath is only read for CSV and JSON sources.
	RegistrantsPath string
}

// Load picks the reader by file extension.
func Load(path string, opts Options) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, opts.RegistrantsPath)
	case ".json":
		return LoadJSON(path, opts.RegistrantsPath)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return LoadWorkbook(path, opts.SalesSheet, opts.RegistrantsSheet)
	}
	return emptySource(), &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("unsupported source %q", path)}
}

// LoadWorkbook reads the sales sheet (the first sheet when salesSheet is
// empty) and the registrant sheet. Cells are read raw, so dates arrive as
// Excel serial numbers. A missing registrant sheet is a warning, not an
// error.
func LoadWorkbook(path, salesSheet, registrantsSheet string) (Source, error) {
	src := emptySource()

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return src, &LoadError{Code: LoadMissingSourceError, Msg: fmt.Sprintf("workbook %q not found", path)}
		}
		return src, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("opening workbook %q: %v", path, err)}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Failed to close workbook %s: %v", path, err)
		}
	}()

	sheets := f.GetSheetList()
	if salesSheet == "" {
		if len(sheets) == 0 {
			return src, &LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("workbook %q has no sheets", path)}
		}
		salesSheet = sheets[0]
	}
	if !hasSheet(sheets, salesSheet) {
		return src, &LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("sales sheet %q not found", salesSheet)}
	}

	rows, err := f.GetRows(salesSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return src, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("reading sheet %q: %v", salesSheet, err)}
	}
	src.Sales = toRowsBatch(rows)
	log.Infof("Loaded %d sales rows from sheet %s", src.Sales.Len(), salesSheet)

	if registrantsSheet == "" || !hasSheet(sheets, registrantsSheet) {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("registrant sheet %q not found", registrantsSheet)})
		return src, nil
	}
	rows, err = f.GetRows(registrantsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("reading registrant sheet %q: %v", registrantsSheet, err)})
		return src, nil
	}
	src.Registrants = toRowsBatch(rows)
	log.Infof("Loaded %d registrants from sheet %s", src.Registrants.Len(), registrantsSheet)
	return src, nil
}

// LoadCSV reads the sales table from salesPath and, when given, the registrant
// table from registrantsPath.
func LoadCSV(salesPath, registrantsPath string) (Source, error) {
	src := emptySource()

	rows, err := readCSV(salesPath)
	if err != nil {
		return src, err
	}
	src.Sales = toRowsBatch(rows)
	log.Infof("Loaded %d sales rows from %s", src.Sales.Len(), salesPath)

	if registrantsPath == "" {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: "no registrant file configured"})
		return src, nil
	}
	rows, err = readCSV(registrantsPath)
	if err != nil {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("registrant file unavailable: %v", err)})
		return src, nil
	}
	src.Registrants = toRowsBatch(rows)
	log.Infof("Loaded %d registrants from %s", src.Registrants.Len(), registrantsPath)
	return src, nil
}

// LoadJSON reads row batches exported as {"column_names": [...], "rows": [...]}.
// Numbers arrive as float64 and are handled by the normalizer like raw
// workbook cells.
func LoadJSON(salesPath, registrantsPath string) (Source, error) {
	src := emptySource()

	batch, err := readJSON(salesPath)
	if err != nil {
		return src, err
	}
	src.Sales = batch
	log.Infof("Loaded %d sales rows from %s", src.Sales.Len(), salesPath)

	if registrantsPath == "" {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: "no registrant file configured"})
		return src, nil
	}
	batch, err = readJSON(registrantsPath)
	if err != nil {
		src.warn(&LoadError{Code: LoadMissingSheetError, Msg: fmt.Sprintf("registrant file unavailable: %v", err)})
		return src, nil
	}
	src.Registrants = batch
	log.Infof("Loaded %d registrants from %s", src.Registrants.Len(), registrantsPath)
	return src, nil
}

func readJSON(path string) (*ic.RowsBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: LoadMissingSourceError, Msg: fmt.Sprintf("file %q not found", path)}
		}
		return nil, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("opening %q: %v", path, err)}
	}
	batch, err := ic.RowsBatchFromString(string(data))
	if err != nil {
		return nil, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("reading %q: %v", path, err)}
	}
	return batch, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: LoadMissingSourceError, Msg: fmt.Sprintf("file %q not found", path)}
		}
		return nil, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("opening %q: %v", path, err)}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Code: LoadReadError, Msg: fmt.Sprintf("reading %q: %v", path, err)}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// toRowsBatch takes the first row as the header. Blank cells become nil,
// short rows are padded and fully blank rows are skipped.
func toRowsBatch(rows [][]string) *ic.RowsBatch {
	if len(rows) == 0 {
		return ic.NewRowsBatch(nil, nil)
	}
	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	data := make([][]interface{}, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make([]interface{}, len(header))
		blank := true
		for i := 0; i < len(header) && i < len(raw); i++ {
			if strings.TrimSpace(raw[i]) == "" {
				continue
			}
			row[i] = raw[i]
			blank = false
		}
		if !blank {
			data = append(data, row)
		}
	}
	return ic.NewRowsBatch(header, data)
}

func hasSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
