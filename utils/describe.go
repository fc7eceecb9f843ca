package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// DescribeFile is the second line of an inline result.
func DescribeFile(size int, fileType, mimeType string) string {
	parts := []string{"Size: " + humanize.Bytes(uint64(size))}
	if fileType != "" {
		parts = append(parts, "Type: "+fileType)
	}
	if mimeType != "" {
		parts = append(parts, mimeType)
	}
	return strings.Join(parts, " | ")
}
