package api

import (
	"bytes"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
)

// closeTracker wraps a canned body and notes whether the client closed it.
type closeTracker struct {
	*bytes.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

// recordingDoer answers every request with the same outcome and keeps the
// last request it saw.
type recordingDoer struct {
	status int
	body   *closeTracker
	err    error

	req   *fhttp.Request
	sent  []byte
	calls int
}

func replyWith(payload string, status int) *recordingDoer {
	return &recordingDoer{
		status: status,
		body:   &closeTracker{Reader: bytes.NewReader([]byte(payload))},
	}
}

func failWith(err error) *recordingDoer {
	return &recordingDoer{err: err}
}

func (d *recordingDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.calls++
	d.req = req
	if req.Body != nil {
		d.sent, _ = io.ReadAll(req.Body)
	}
	if d.err != nil {
		return nil, d.err
	}
	return &fhttp.Response{
		StatusCode: d.status,
		Header:     make(fhttp.Header),
		Body:       d.body,
	}, nil
}
