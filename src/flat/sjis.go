package flat

import (
	"golang.org/x/text/encoding/japanese"
)

// decodeSJIS converts Shift-JIS game text to UTF-8.  Text that does not
// decode is returned unchanged.
func decodeSJIS(text string) string {
	decoded, err := japanese.ShiftJIS.NewDecoder().String(text)
	if err != nil {
		return text
	}
	return decoded
}

// EncodeSJIS converts UTF-8 text to the Shift-JIS bytes Japanese game data
// carries.
func EncodeSJIS(text string) (string, error) {
	return japanese.ShiftJIS.NewEncoder().String(text)
}
