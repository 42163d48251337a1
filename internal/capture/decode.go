package capture

import (
	"encoding/base64"
	"fmt"
)

// DecodeBody turns a captured response body into raw bytes. The CDP
// Network.getResponseBody call returns the body either verbatim or
// base64-encoded together with a flag saying which.
func DecodeBody(body string, base64Encoded bool) ([]byte, error) {
	if !base64Encoded {
		return []byte(body), nil
	}
	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return raw, nil
}
