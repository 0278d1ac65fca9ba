package commands

import (
	"fmt"
	"io"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

// RunFilter filters the trace file and writes matching events to output.
// It returns the number of events written.
func RunFilter(path, output string, flags FilterFlags) (int, error) {
	filter, err := flags.Filter()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
