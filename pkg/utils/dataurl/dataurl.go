// Package dataurl handles "data:" URL payloads carrying signature images.
//
// Signature pads on the frontend produce data URLs (RFC 2397) like
//
//	data:image/png;base64,iVBORw0KGgo...
//
// The payload is stored and re-emitted verbatim: the image bytes are never
// re-encoded, so a rendered document embeds exactly what the signer drew.
package dataurl

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotDataURL = errors.New("not a data URL")

// media types accepted for signature images.
var acceptedMediaTypes = []string{"image/png", "image/jpeg", "image/svg+xml"}

// Image is a data-URL encoded image.
//
// Zero value means "no image".
type Image struct {
	mediaType string
	raw       string // the whole data URL, kept verbatim
}

// Parse validates s as a base64 data URL with an accepted image media type.
func Parse(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, fmt.Errorf("%w: no payload", ErrNotDataURL)
	}

	mediaType, found := strings.CutSuffix(meta, ";base64")
	if !found {
		return Image{}, fmt.Errorf("%w: payload is not base64", ErrNotDataURL)
	}

	accepted := false
	for _, mt := range acceptedMediaTypes {
		if mediaType == mt {
			accepted = true
			break
		}
	}
	if !accepted {
		return Image{}, fmt.Errorf("%w: unsupported media type %q", ErrNotDataURL, mediaType)
	}

	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return Image{}, fmt.Errorf("%w: broken base64: %s", ErrNotDataURL, err)
	}

	return Image{mediaType: mediaType, raw: s}, nil
}

func (i Image) IsZero() bool {
	return i.raw == ""
}

func (i Image) MediaType() string {
	return i.mediaType
}

// String returns the data URL, byte-for-byte as it was parsed.
func (i Image) String() string {
	return i.raw
}

func (i Image) Equal(other Image) bool {
	return i.raw == other.raw
}

func (i Image) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.raw)
}

func (i *Image) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*i = Image{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
