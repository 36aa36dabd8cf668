package httputil

import "net/url"

// secretParams are query parameters carrying API credentials
var secretParams = []string{"crtfc_key", "serviceKey", "servicekey"}

// redact masks credential query parameters so URLs can be logged
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "***")
			changed = true
		}
	}
	if !changed {
		return raw
	}

	u.RawQuery = q.Encode()
	return u.String()
}
