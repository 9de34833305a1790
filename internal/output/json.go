package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/masmgr/gecko-go/internal/blob"
)

// JSONWriter writes reports as JSON documents.
type JSONWriter struct{}

// WriteListing outputs a directory listing as JSON.
func (w *JSONWriter) WriteListing(report *ListingReport, options OutputOptions) error {
	return writeJSON(NewJSONListing(report.Ref, report.Result, report.GeneratedAt), options.OutputPath)
}

// WriteBlob outputs a rendered file as JSON. Raw content is written unchanged.
func (w *JSONWriter) WriteBlob(report *BlobReport, options OutputOptions) error {
	if report.Rendered.Kind == blob.KindRaw {
		return withOutput(options.OutputPath, func(out io.Writer) error {
			_, err := out.Write(report.Rendered.Raw)
			return err
		})
	}
	return writeJSON(NewJSONBlob(report.Ref, report.Result, report.Rendered, report.GeneratedAt), options.OutputPath)
}

// WriteHistory outputs a page of commits as JSON.
func (w *JSONWriter) WriteHistory(report *HistoryReport, options OutputOptions) error {
	return writeJSON(NewJSONHistory(report.Ref, report.Page, report.GeneratedAt), options.OutputPath)
}

// WriteDiff outputs a commit diff as JSON.
func (w *JSONWriter) WriteDiff(report *DiffReport, options OutputOptions) error {
	return writeJSON(NewJSONDiff(report.Result, report.GeneratedAt), options.OutputPath)
}

// WriteBranches outputs the branch list as JSON.
func (w *JSONWriter) WriteBranches(report *BranchReport, options OutputOptions) error {
	return writeJSON(NewJSONBranches(report.Branches), options.OutputPath)
}

func writeJSON(v any, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return withOutput(outputPath, func(out io.Writer) error {
		_, err := fmt.Fprintln(out, string(data))
		return err
	})
}
