package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clubdemo/club-demographics/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders report with the named formatter and writes it to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReportFile renders report into path, or to stdout when path is empty.
func GenerateReportFile(report *domain.Report, format, path string) error {
	if path == "" {
		return GenerateReport(os.Stdout, report, format)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := GenerateReport(file, report, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
