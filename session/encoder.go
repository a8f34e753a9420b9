package session

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const sessionFormatVersionCurrent = 1

var errCorruptBlob = errors.New("corrupt session blob")

// Encode serializes s into the current binary schema:
//
//	version byte | len-prefixed UserID, Email, Name | CreatedAt | ExpiresAt
//
// String fields are limited to 255 bytes; timestamps are big-endian int64
// Unix seconds. The session ID is the Redis key and is not part of the blob.
func Encode(s *Session) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(sessionFormatVersionCurrent)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"userID", s.UserID},
		{"email", s.Email},
		{"name", s.Name},
	} {
		if len(field.value) > 255 {
			return nil, errors.New(field.name + " too long")
		}
		buf.WriteByte(byte(len(field.value)))
		buf.WriteString(field.value)
	}

	if err := binary.Write(&buf, binary.BigEndian, s.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, s.ExpiresAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by any supported schema version.
func Decode(id string, data []byte) (*Session, error) {
	if len(data) < 1 {
		return nil, errCorruptBlob
	}
	if data[0] != sessionFormatVersionCurrent {
		return nil, errCorruptBlob
	}

	s := &Session{ID: id}
	idx := 1

	for _, dst := range []*string{&s.UserID, &s.Email, &s.Name} {
		if idx >= len(data) {
			return nil, errCorruptBlob
		}
		n := int(data[idx])
		idx++
		if idx+n > len(data) {
			return nil, errCorruptBlob
		}
		*dst = string(data[idx : idx+n])
		idx += n
	}

	if idx+16 > len(data) {
		return nil, errCorruptBlob
	}
	s.CreatedAt = int64(binary.BigEndian.Uint64(data[idx : idx+8]))
	s.ExpiresAt = int64(binary.BigEndian.Uint64(data[idx+8 : idx+16]))

	return s, nil
}
