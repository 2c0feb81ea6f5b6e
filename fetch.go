// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"io"
	"net/http"
)

// FetchTask performs one HTTP request as a task and completes with the
// *http.Response. Stop aborts the request. Non-2xx responses are not
// failures.
type FetchTask struct {
	taskCore
	req    *http.Request
	client *http.Client
}

// FetchOption configures a FetchTask.
type FetchOption func(*FetchTask)

// WithHTTPClient sets the client used to send the request.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(t *FetchTask) {
		if c != nil {
			t.client = c
		}
	}
}

// NewFetchTask returns an idle task sending req.
func NewFetchTask(req *http.Request, opts ...FetchOption) *FetchTask {
	t := &FetchTask{req: req, client: http.DefaultClient}
	for _, fn := range opts {
		fn(t)
	}
	return t
}

// Run sends the request. The request context ends when the response body
// is closed, when the task is stopped, or when ctx ends.
func (t *FetchTask) Run(ctx context.Context) (any, error) {
	ctx, cancel, err := t.start(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(t.req.WithContext(ctx))
	if err != nil {
		cancel()
		if t.isStopped() {
			return nil, ErrTaskStopped
		}
		t.finish()
		return nil, err
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	t.finish()
	return resp, nil
}

// Stop aborts a request in flight.
func (t *FetchTask) Stop() {
	t.stop()
}

// cancelBody releases the request context once the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
