// internal/app/system/imaging/urlcheck.go
package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
)

// ErrURLNotImage is returned when an image URL resolves but the response
// does not decode as an image.
var ErrURLNotImage = errors.New("imaging: url did not resolve to an image")

// maxProbeBytes bounds how much of the remote response is read while
// probing. DecodeConfig only needs the header.
const maxProbeBytes = 1 << 20

// CheckImageURL fetches rawURL and verifies the response decodes as an
// image. A nil client selects http.DefaultClient. Network failures, bad
// statuses, and non-image payloads all fail the check; the caller must not
// persist the URL in that case.
func CheckImageURL(ctx context.Context, client *http.Client, rawURL string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotImage, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotImage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrURLNotImage, resp.StatusCode)
	}

	if _, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes)); err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotImage, err)
	}
	return nil
}
