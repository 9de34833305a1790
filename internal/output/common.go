package output

import (
	"io"
	"os"
)

// Stdout is where reports go when no output path is set. Tests replace it.
var Stdout io.Writer = os.Stdout

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// withOutput runs write against the configured destination and closes any file it opened.
func withOutput(outputPath string, write func(io.Writer) error) (err error) {
	w, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
	}
	return write(w)
}

// truncateMessage shortens msg to at most maxLen runes, ending in "..." when cut.
func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}
