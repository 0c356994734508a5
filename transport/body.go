package transport

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/net/html/charset"
)

// decodeBody applies the body policy: empty yields nil, JSON is decoded, anything else is text.
// If a content coding cannot be undone, the body is returned as it was received, as text, along
// with the decoding error. The data is usable either way.
func decodeBody(raw []byte, header http.Header) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	decoded, err := decompress(raw, header.Get("Content-Encoding"))
	if err != nil {
		return string(raw), err
	}
	raw = toUTF8(decoded, header.Get("Content-Type"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if json.Valid(raw) {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		var v interface{}
		if err := decoder.Decode(&v); err == nil {
			return v, nil
		}
	}
	return string(raw), nil
}

// decompress undoes each listed content coding, last applied first.
func decompress(raw []byte, contentEncoding string) ([]byte, error) {
	if contentEncoding == "" {
		return raw, nil
	}
	codings := strings.Split(contentEncoding, ",")
	for i := len(codings) - 1; i >= 0; i-- {
		var err error
		switch coding := strings.ToLower(strings.TrimSpace(codings[i])); coding {
		case "", "identity":
		case "gzip", "x-gzip":
			var z *gzip.Reader
			if z, err = gzip.NewReader(bytes.NewReader(raw)); err == nil {
				raw, err = io.ReadAll(z)
				_ = z.Close()
			}
		case "br":
			raw, err = io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		case "zstd":
			var z *zstd.Decoder
			if z, err = zstd.NewReader(nil); err == nil {
				raw, err = z.DecodeAll(raw, nil)
				z.Close()
			}
		default:
			return nil, fmt.Errorf("%s encoding not supported", coding)
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding %s response body: %w", codings[i], err)
		}
	}
	return raw, nil
}

// toUTF8 converts text declared in a non-UTF-8 charset. Bodies that cannot be converted are
// returned unchanged.
func toUTF8(raw []byte, contentType string) []byte {
	if contentType == "" {
		return raw
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return raw
	}
	label := strings.ToLower(params["charset"])
	if label == "" || label == "utf-8" || label == "utf8" {
		return raw
	}
	reader, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return raw
	}
	converted, err := io.ReadAll(reader)
	if err != nil {
		return raw
	}
	return converted
}
