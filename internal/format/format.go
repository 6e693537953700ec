// Package format encodes results as JSON or MessagePack.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	JSON    = "json"
	MsgPack = "msgpack"

	ContentTypeJSON    = "application/json"
	ContentTypeMsgPack = "application/msgpack"
)

// Encode writes data to w in the named format.
func Encode(w io.Writer, format string, data any) error {
	switch format {
	case "", JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(data)
	}
	return fmt.Errorf("unknown format %q", format)
}

// FromRequest picks MessagePack when the request asks for it via
// ?format=msgpack or an Accept header, JSON otherwise.
func FromRequest(r *http.Request) string {
	if r.URL.Query().Get("format") == MsgPack || r.Header.Get("Accept") == ContentTypeMsgPack {
		return MsgPack
	}
	return JSON
}

// WriteResponse writes data with the given status in the format the request
// asked for.
func WriteResponse(w http.ResponseWriter, r *http.Request, status int, data any) error {
	f := FromRequest(r)
	if f == MsgPack {
		w.Header().Set("Content-Type", ContentTypeMsgPack)
	} else {
		w.Header().Set("Content-Type", ContentTypeJSON)
	}
	w.WriteHeader(status)
	return Encode(w, f, data)
}
