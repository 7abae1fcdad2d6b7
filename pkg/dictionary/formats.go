package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bastiangx/wordkit/pkg/radix"
)

// FileFormat is the line layout of a dictionary file.
type FileFormat int

const (
	FormatUnknown   FileFormat = iota
	FormatFrequency            // "<word> <frequency>" per line
	FormatWordList             // one bare word per line
	FormatMixed                // both kinds of line
)

// sampleLines is how many entries DetectFileFormat inspects.
const sampleLines = 64

// FormatInfo describes a supported format.
type FormatInfo struct {
	Format      FileFormat
	Description string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatFrequency: {Format: FormatFrequency, Description: "Word and frequency per line"},
	FormatWordList:  {Format: FormatWordList, Description: "Bare word per line"},
	FormatMixed:     {Format: FormatMixed, Description: "Mixed frequency and bare lines"},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat samples the first entries of a file. Empty files and
// files without a single usable entry are rejected.
func DetectFileFormat(path string) (FileFormat, error) {
	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	withFreq, bare, seen := 0, 0, 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for seen < sampleLines && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if _, _, ok := parseEntry(line); !ok {
			continue
		}
		seen++
		if _, _, ok := radix.ParseLine(line); ok {
			withFreq++
		} else {
			bare++
		}
	}
	if err := scanner.Err(); err != nil {
		return FormatUnknown, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch {
	case withFreq > 0 && bare > 0:
		return FormatMixed, nil
	case withFreq > 0:
		return FormatFrequency, nil
	case bare > 0:
		return FormatWordList, nil
	}
	return FormatUnknown, fmt.Errorf("no dictionary entries in %s", path)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
