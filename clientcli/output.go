package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter formats results for output.
type Formatter interface {
	FormatUpload(w io.Writer, result *UploadResult) error
	FormatList(w io.Writer, entries []FileEntry) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Uploaded: %s (%s)\n", result.FileName, formatSize(result.Size))
	if result.ContentType != "" {
		_, _ = fmt.Fprintf(w, "  Content-Type: %s\n", result.ContentType)
	}
	return nil
}

func (f *HumanFormatter) FormatList(w io.Writer, entries []FileEntry) error {
	if len(entries) == 0 {
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "No files.")
		}
		return nil
	}
	for i := range entries {
		_, _ = fmt.Fprintf(w, "%s\n", entries[i].Key)
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "  %s\n", entries[i].URL)
		}
	}
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs newline-delimited JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	return json.NewEncoder(w).Encode(result)
}

func (f *JSONFormatter) FormatList(w io.Writer, entries []FileEntry) error {
	if entries == nil {
		entries = []FileEntry{}
	}
	return json.NewEncoder(w).Encode(entries)
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
