package loader

import (
	"errors"
	"fmt"
)

type LoadError struct {
	Code int
	Msg  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error (%d): %s", e.Code, e.Msg)
}

const (
	LoadMissingSourceError int = iota + 1
	LoadMissingSheetError
	LoadMissingColumnError
	LoadReadError
)

func MissingColumn(sheet, column string) *LoadError {
	return &LoadError{Code: LoadMissingColumnError, Msg: fmt.Sprintf("sheet %q has no column %q", sheet, column)}
}

func IsMissingSource(err error) bool {
	return hasCode(err, LoadMissingSourceError)
}

func IsMissingSheet(err error) bool {
	return hasCode(err, LoadMissingSheetError)
}

func IsMissingColumn(err error) bool {
	return hasCode(err, LoadMissingColumnError)
}

func hasCode(err error, code int) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == code
}
