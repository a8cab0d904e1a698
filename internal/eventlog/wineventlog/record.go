package wineventlog

import (
	"encoding/binary"
	"fmt"
	"time"
	"unicode/utf16"

	"github.com/hejijunhao/seclog/internal/model"
)

// Byte offsets inside an EVENTLOGRECORD header.
const (
	offLength        = 0
	offRecordNumber  = 8
	offTimeGenerated = 12
	offEventID       = 20
	headerSize       = 56
)

// decodeRecords splits a ReadEventLogW buffer into raw records.
func decodeRecords(buf []byte) ([]model.RawRecord, error) {
	var out []model.RawRecord
	for off := 0; off < len(buf); {
		if len(buf)-off < headerSize {
			return nil, fmt.Errorf("truncated record header at offset %d", off)
		}
		length := int(binary.LittleEndian.Uint32(buf[off+offLength:]))
		if length < headerSize || length > len(buf)-off {
			return nil, fmt.Errorf("invalid record length %d at offset %d", length, off)
		}
		rec := buf[off : off+length]
		out = append(out, model.RawRecord{
			Code:         binary.LittleEndian.Uint32(rec[offEventID:]) & 0xFFFF,
			Generated:    time.Unix(int64(binary.LittleEndian.Uint32(rec[offTimeGenerated:])), 0).UTC(),
			RecordNumber: binary.LittleEndian.Uint32(rec[offRecordNumber:]),
			Source:       utf16String(rec[headerSize:]),
		})
		off += length
	}
	return out, nil
}

// utf16String decodes a NUL-terminated little-endian UTF-16 string.
func utf16String(b []byte) string {
	var u []uint16
	for i := 0; i+1 < len(b); i += 2 {
		c := binary.LittleEndian.Uint16(b[i:])
		if c == 0 {
			break
		}
		u = append(u, c)
	}
	return string(utf16.Decode(u))
}
