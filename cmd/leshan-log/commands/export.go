package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/LarsBremen/leshan/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *log.Reader, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "endpoint", "category", "object_id", "instance_id", "resource_id", "code", "value"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var resourceID, code, value string
		switch {
		case event.Read != nil:
			resourceID = strconv.Itoa(int(event.Read.ResourceID))
			code = event.Read.Code
		case event.Execute != nil:
			resourceID = strconv.Itoa(int(event.Execute.ResourceID))
			code = event.Execute.Code
		case event.Tick != nil:
			value = strconv.FormatFloat(event.Tick.Value, 'g', -1, 64)
		case event.StateChange != nil:
			value = event.StateChange.NewState
		case event.Error != nil:
			value = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timeLayout),
			event.Endpoint,
			event.Category.String(),
			strconv.Itoa(int(event.ObjectID)),
			strconv.Itoa(int(event.InstanceID)),
			resourceID,
			code,
			value,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
