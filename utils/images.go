package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"truckore/config"
	"truckore/models"
)

// thumbWidth is the thumbnail width in px; height follows the aspect ratio.
const thumbWidth = 200

// ProcessCaptures runs camera shots through the storage pipeline: decode the
// payload, cut a thumbnail, upload both, and swap the payloads for object
// URLs. Without storage configured the payloads pass through untouched. A
// shot that fails at any step is dropped; a weighment never fails over an
// image.
func ProcessCaptures(ctx context.Context, shots models.CapturedImages) models.CapturedImages {
	if shots.Empty() || !R2Configured() {
		return shots
	}

	log := config.Logger()
	if shots.FrontImage != nil {
		if u, err := storeCapture(ctx, "front", *shots.FrontImage); err != nil {
			log.WithError(err).Warn("front capture dropped")
			shots.FrontImage = nil
		} else {
			shots.FrontImage = &u
		}
	}
	if shots.RearImage != nil {
		if u, err := storeCapture(ctx, "rear", *shots.RearImage); err != nil {
			log.WithError(err).Warn("rear capture dropped")
			shots.RearImage = nil
		} else {
			shots.RearImage = &u
		}
	}
	return shots
}

// storeCapture uploads one shot plus its thumbnail and returns the object
// URL of the original.
func storeCapture(ctx context.Context, side, payload string) (string, error) {
	data, mime, err := decodeImagePayload(payload)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%d_%d%s", side, time.Now().UnixNano(), rand.Intn(1000), extensionFor(mime))
	fileURL, err := UploadToR2(ctx, data, "captures/"+name, mime)
	if err != nil {
		return "", err
	}

	// A lost thumbnail never blocks the capture itself.
	if _, err := UploadToR2(ctx, buf.Bytes(), "captures/thumbnails/"+thumbName(name), "image/jpeg"); err != nil {
		config.Logger().WithError(err).Warn("thumbnail upload failed")
	}
	return fileURL, nil
}

// decodeImagePayload accepts a bare base64 string or a data URL
// (data:image/png;base64,...) and returns the raw bytes and MIME type.
func decodeImagePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)

	declared := ""
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", fmt.Errorf("malformed data url")
		}
		declared = strings.TrimSuffix(header, ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	if declared != "" {
		return data, declared, nil
	}
	return data, http.DetectContentType(data), nil
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func thumbName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name + ".jpg"
}
