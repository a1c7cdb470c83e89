package dataurl_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
)

// 1x1 transparent png
const pngDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestParse(t *testing.T) {
	t.Run("it accepts a base64 png data URL and keeps it verbatim", func(t *testing.T) {
		img, err := dataurl.Parse(pngDataURL)
		if err != nil {
			t.Fatal(err)
		}
		if img.String() != pngDataURL {
			t.Errorf("payload is not verbatim: %s", img.String())
		}
		if img.MediaType() != "image/png" {
			t.Errorf("unexpected media type: %s", img.MediaType())
		}
		if img.IsZero() {
			t.Error("parsed image should not be zero")
		}
	})

	t.Run("it rejects non data URLs", func(t *testing.T) {
		for name, in := range map[string]string{
			"plain string":      "john hancock",
			"http url":          "https://example.invalid/signature.png",
			"no payload":        "data:image/png;base64",
			"not base64":        "data:image/png,rawbytes",
			"unsupported media": "data:application/pdf;base64,JVBERg==",
			"broken base64":     "data:image/png;base64,%%%%",
			"empty":             "",
		} {
			t.Run(name, func(t *testing.T) {
				if _, err := dataurl.Parse(in); !errors.Is(err, dataurl.ErrNotDataURL) {
					t.Errorf("expected ErrNotDataURL, got: %v", err)
				}
			})
		}
	})
}

func TestImageJSON(t *testing.T) {
	t.Run("it round-trips through JSON without re-encoding", func(t *testing.T) {
		img, err := dataurl.Parse(pngDataURL)
		if err != nil {
			t.Fatal(err)
		}

		marshaled, err := json.Marshal(img)
		if err != nil {
			t.Fatal(err)
		}

		restored := dataurl.Image{}
		if err := json.Unmarshal(marshaled, &restored); err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(img) {
			t.Errorf("round-trip changed payload: %s", restored.String())
		}
	})

	t.Run("zero image marshals to null", func(t *testing.T) {
		marshaled, err := json.Marshal(dataurl.Image{})
		if err != nil {
			t.Fatal(err)
		}
		if string(marshaled) != "null" {
			t.Errorf("expected null, got %s", string(marshaled))
		}

		restored := dataurl.Image{}
		if err := json.Unmarshal([]byte("null"), &restored); err != nil {
			t.Fatal(err)
		}
		if !restored.IsZero() {
			t.Error("null should unmarshal to zero image")
		}
	})
}
