package delog

import (
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

const digits = "0123456789abcdef"

var (
	textTrue      = []byte("true")
	textFalse     = []byte("false")
	textNull      = []byte("null")
	textLenPrefix = []byte("len:")
)

func writeField(w *LineWriter, f *Field) {
	w.WriteByte(' ')
	w.WriteString(f.Key)
	w.WriteByte('=')
	writeFieldValue(w, f)
}

func writeFieldValue(w *LineWriter, f *Field) {
	var tmp [64]byte
	switch f.kind {
	case kindString:
		writeTextString(w, f.str)
	case kindInt:
		w.Write(strconv.AppendInt(tmp[:0], int64(f.num), 10))
	case kindUint:
		w.Write(strconv.AppendUint(tmp[:0], f.num, 10))
	case kindFloat:
		writeFloat64(w, math.Float64frombits(f.num))
	case kindBool:
		writeBool(w, f.num != 0)
	case kindDuration:
		w.WriteString(time.Duration(f.num).String())
	case kindTime:
		w.Write(f.t.AppendFormat(tmp[:0], time.RFC3339Nano))
	case kindError:
		if err, ok := f.ref.(error); ok && err != nil {
			writeQuoted(w, err.Error())
		} else {
			w.Write(textNull)
		}
	case kindBytes:
		w.Write(textLenPrefix)
		w.Write(strconv.AppendUint(tmp[:0], f.num, 10))
	case kindAny:
		writeAny(w, f.ref)
	default:
		w.Write(textNull)
	}
}

func writeAny(w *LineWriter, v any) {
	var tmp [64]byte
	switch vv := v.(type) {
	case nil:
		w.Write(textNull)
	case string:
		writeTextString(w, vv)
	case []byte:
		w.Write(textLenPrefix)
		w.Write(strconv.AppendInt(tmp[:0], int64(len(vv)), 10))
	case bool:
		writeBool(w, vv)
	case int:
		w.Write(strconv.AppendInt(tmp[:0], int64(vv), 10))
	case int32:
		w.Write(strconv.AppendInt(tmp[:0], int64(vv), 10))
	case int64:
		w.Write(strconv.AppendInt(tmp[:0], vv, 10))
	case uint:
		w.Write(strconv.AppendUint(tmp[:0], uint64(vv), 10))
	case uint8:
		w.Write(strconv.AppendUint(tmp[:0], uint64(vv), 10))
	case uint32:
		w.Write(strconv.AppendUint(tmp[:0], uint64(vv), 10))
	case uint64:
		w.Write(strconv.AppendUint(tmp[:0], vv, 10))
	case float32:
		writeFloat64(w, float64(vv))
	case float64:
		writeFloat64(w, vv)
	case time.Time:
		w.Write(vv.AppendFormat(tmp[:0], time.RFC3339Nano))
	case time.Duration:
		w.WriteString(vv.String())
	case error:
		writeQuoted(w, vv.Error())
	default:
		w.WriteString("unknown")
	}
}

func writeBool(w *LineWriter, b bool) {
	if b {
		w.Write(textTrue)
	} else {
		w.Write(textFalse)
	}
}

func writeFloat64(w *LineWriter, f float64) {
	switch {
	case math.IsNaN(f):
		w.WriteString("NaN")
	case math.IsInf(f, 1):
		w.WriteString("+Inf")
	case math.IsInf(f, -1):
		w.WriteString("-Inf")
	default:
		var tmp [32]byte
		w.Write(strconv.AppendFloat(tmp[:0], f, 'g', -1, 64))
	}
}

// writeTextString quotes s only when it would otherwise break key=value parsing.
func writeTextString(w *LineWriter, s string) {
	if !utf8.ValidString(s) {
		writeQuoted(w, s)
		return
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x1F || c == ' ' || c == '"' || c == '=' {
			writeQuoted(w, s)
			return
		}
	}
	w.WriteString(s)
}

func writeQuoted(w *LineWriter, s string) {
	w.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < utf8.RuneSelf {
			i++
			continue
		}
		if start < i {
			w.WriteString(s[start:i])
		}
		if c < utf8.RuneSelf {
			switch c {
			case '\\', '"':
				w.WriteByte('\\')
				w.WriteByte(c)
			case '\n':
				w.WriteString(`\n`)
			case '\r':
				w.WriteString(`\r`)
			case '\t':
				w.WriteString(`\t`)
			default:
				w.WriteString(`\u00`)
				w.WriteByte(digits[c>>4])
				w.WriteByte(digits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			w.WriteString("\uFFFD")
			i++
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		w.WriteString(s[start:])
	}
	w.WriteByte('"')
}
