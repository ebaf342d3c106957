package server

import (
	"encoding/base64"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// normalizeValue converts Firestore-specific scalars into plain
// JSON-serializable values: timestamps become RFC 3339 strings, document
// references their resource path, geo points a {latitude, longitude} pair,
// and byte blobs base64 text. Maps and slices are walked recursively;
// JSON-native scalars pass through unchanged.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *fs.DocumentRef:
		if t == nil {
			return nil
		}
		return t.Path
	case *latlng.LatLng:
		if t == nil {
			return nil
		}
		return map[string]any{"latitude": t.Latitude, "longitude": t.Longitude}
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}
