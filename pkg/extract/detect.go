package extract

import (
	"bytes"
	"path/filepath"
	"strings"
)

// DetectFormat guesses the export format from the filename extension and a
// peek at the content. It returns false when nothing matches; callers skip
// those files.
func DetectFormat(filename string, data []byte) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".qbo", ".ofx":
		return AmexOFX, true
	case ".xls":
		return DNBMastercardXLS, true
	case ".csv":
		if looksLikeSpareBank1(data) {
			return SpareBank1CSV, true
		}
		return "", false
	}

	head := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(head, []byte("OFXHEADER")) || bytes.HasPrefix(head, []byte("<OFX")) {
		return AmexOFX, true
	}

	return "", false
}

func looksLikeSpareBank1(data []byte) bool {
	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		end = len(data)
	}
	header := strings.ToLower(string(data[:end]))
	return strings.Contains(header, "dato") && strings.Contains(header, "beskrivelse")
}
