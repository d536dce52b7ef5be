package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		want     Format
		ok       bool
	}{
		{"qbo extension", "2025-01.qbo", "", AmexOFX, true},
		{"ofx extension", "statement.OFX", "", AmexOFX, true},
		{"xls extension", "2025-01.xls", "", DNBMastercardXLS, true},
		{"sparebank1 csv", "2025-01.csv", `"Dato";"Beskrivelse";"Rentedato"`, SpareBank1CSV, true},
		{"foreign csv", "export.csv", "Date,Payee,Amount", "", false},
		{"ofx content no extension", "download", "\nOFXHEADER:100\n<OFX>", AmexOFX, true},
		{"unknown", "notes.txt", "hello", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := DetectFormat(tt.filename, []byte(tt.data))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, format)
		})
	}
}
