package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
)

// WriteJSON encodes summaries as an indented JSON array.
// Non-finite percentages (from a zero total) are written as null.
func WriteJSON(summaries []dataset.CategorySummary, w io.Writer) error {
	type summary struct {
		Category   float64  `json:"category"`
		Percentage *float64 `json:"percentage"`
		Users      []string `json:"users"`
	}

	out := make([]summary, len(summaries))
	for i, s := range summaries {
		out[i] = summary{Category: s.Category, Users: s.Users}
		if finite(s.Percentage) {
			p := s.Percentage
			out[i].Percentage = &p
		}
		if out[i].Users == nil {
			out[i].Users = []string{}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteCSV encodes summaries as category,percentage,users rows. Users are
// joined with ';'.
func WriteCSV(summaries []dataset.CategorySummary, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "percentage", "users"}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write csv")
	}
	for _, s := range summaries {
		pct := ""
		if finite(s.Percentage) {
			pct = strconv.FormatFloat(s.Percentage, 'f', -1, 64)
		}
		rec := []string{
			strconv.FormatFloat(s.Category, 'f', -1, 64),
			pct,
			strings.Join(s.Users, ";"),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write csv")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write csv")
	}
	return nil
}

// Export writes summaries to path, choosing JSON or CSV from the extension.
func Export(summaries []dataset.CategorySummary, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var write func([]dataset.CategorySummary, io.Writer) error
	switch format {
	case FormatJSON:
		write = WriteJSON
	case FormatCSV:
		write = WriteCSV
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "summaries cannot be exported as %s", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := write(summaries, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
