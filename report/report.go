// Package report pulls the interesting parts out of vendor text reports.
package report

import (
	"fmt"
	"strings"

	"github.com/daedaleanai/runsyn/util"
)

// MarkerError reports a marker that could not be found in a report.
type MarkerError struct {
	Marker string
	Path   string
}

func (e *MarkerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("marker %q not found", e.Marker)
	}
	return fmt.Sprintf("marker %q not found in '%s'", e.Marker, e.Path)
}

// Extract is a piece of a report file.
type Extract struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Text string `yaml:"text"`
}

// Slice returns the text from the first occurrence of `start`, inclusive, up to the first
// occurrence of `end` at or after it, exclusive.
func Slice(text, start, end string) (string, error) {
	from := strings.Index(text, start)
	if from < 0 {
		return "", &MarkerError{Marker: start}
	}
	length := strings.Index(text[from:], end)
	if length < 0 {
		return "", &MarkerError{Marker: end}
	}
	return text[from : from+length], nil
}

// ReadSection reads the report at `filePath` and slices it between `start` and `end`.
func ReadSection(filePath, name, start, end string) (Extract, error) {
	text, err := util.ReadFile(filePath)
	if err != nil {
		return Extract{}, err
	}
	section, err := Slice(text, start, end)
	if err != nil {
		if markerErr, ok := err.(*MarkerError); ok {
			markerErr.Path = filePath
		}
		return Extract{}, err
	}
	return Extract{Name: name, Path: filePath, Text: section}, nil
}

// ReadWhole reads the complete report at `filePath`.
func ReadWhole(filePath, name string) (Extract, error) {
	text, err := util.ReadFile(filePath)
	if err != nil {
		return Extract{}, err
	}
	return Extract{Name: name, Path: filePath, Text: text}, nil
}
