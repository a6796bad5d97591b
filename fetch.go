package dataref

import (
	"context"
	"io"
	"net/http"
)

// FetchBlobFromURL performs an HTTP GET against url and returns the full
// response body as a Blob. Redirects are followed and the request carries an
// application/octet-stream content type. Transport failures and non-2xx
// statuses surface as a TransportError; there is no retry.
func FetchBlobFromURL(ctx context.Context, url string, optFns ...func(*Options)) (*Blob, error) {
	return fetchBlobFromURL(ctx, url, applyOptions(optFns))
}

func fetchBlobFromURL(ctx context.Context, url string, o Options) (*Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "fetch", URL: url, cause: err}
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		terr := &TransportError{Op: "fetch", URL: url, cause: err}
		o.Logger.LogFetch(ctx, url, 0, terr)
		return nil, terr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		terr := &TransportError{Op: "fetch", URL: url, StatusCode: resp.StatusCode}
		o.Logger.LogFetch(ctx, url, 0, terr)
		return nil, terr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Op: "fetch", URL: url, cause: err}
		o.Logger.LogFetch(ctx, url, 0, terr)
		return nil, terr
	}

	o.Logger.LogFetch(ctx, url, len(body), nil)
	return NewBlob(body), nil
}
