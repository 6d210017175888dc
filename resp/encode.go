package resp

import "strconv"

// Encode serializes v back to wire bytes.
//
// The reader normalizes its input (maps and sets become arrays, booleans
// become integers, verbatim strings and big numbers become bulk strings),
// so Encode emits the normalized form: an encode/decode round trip
// preserves the tree shape, not the original type markers.
func Encode(v Value) []byte {
	return AppendEncoded(nil, v)
}

// AppendEncoded appends the wire encoding of v to dst and returns the
// extended slice.
func AppendEncoded(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNil:
		return append(dst, "$-1\r\n"...)
	case KindInteger:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.num, 10)
	case KindDouble:
		dst = append(dst, ',')
		dst = strconv.AppendFloat(dst, v.fnum, 'g', -1, 64)
	case KindSimpleString:
		dst = append(dst, '+')
		dst = append(dst, v.data...)
	case KindError:
		dst = append(dst, '-')
		dst = append(dst, v.data...)
	case KindBulkString:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.data)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, v.data...)
	case KindArray:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.items)), 10)
		dst = append(dst, '\r', '\n')
		for _, item := range v.items {
			dst = AppendEncoded(dst, item)
		}

		return dst
	}

	return append(dst, '\r', '\n')
}
