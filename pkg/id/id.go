package id

import (
	"crypto/md5"
	"io"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom deterministic trace id from text
func TraceIDFrom(text string) string {
	h := md5.New()
	io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// Modify derive a trace id from another one
func Modify(traceID, action string) string {
	return foxuuid.Modify(traceID, action)
}
