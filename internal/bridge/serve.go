package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Serve reads one JSON request per line from r and writes one JSON response
// per line to w, strictly in order. It returns nil at EOF, ctx.Err() once ctx
// is done, or the first read or write error. A blocked read is not
// interrupted by ctx; close r to stop a waiting Serve.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return errors.Wrap(readErr, "read request")
		}

		if line = bytes.TrimSpace(line); len(line) > 0 {
			if err := enc.Encode(b.handleLine(ctx, line)); err != nil {
				return errors.Wrap(err, "write response")
			}
		}

		if readErr == io.EOF {
			return nil
		}
	}
}

func (b *Bridge) handleLine(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		b.log.WithError(err).Warn("malformed request")
		return Response{Error: "invalid request: " + err.Error()}
	}
	return b.Invoke(ctx, req)
}
