package session

import (
	"bytes"
	"io"

	"github.com/tidwall/gjson"
)

// selectWriter rewrites complete JSON lines to the result of a gjson path.
type selectWriter struct {
	w    io.Writer
	path string
	buf  []byte
}

// NewSelectWriter returns a writer that replaces every JSON line written to
// it by the result of the gjson path, such as "key" or "{listener,type}",
// and drops lines where the path matches nothing. An empty path returns w.
func NewSelectWriter(w io.Writer, path string) io.Writer {
	if path == "" {
		return w
	}
	return &selectWriter{w: w, path: path}
}

func (sw *selectWriter) Write(p []byte) (int, error) {
	sw.buf = append(sw.buf, p...)
	for {
		idx := bytes.IndexByte(sw.buf, '\n')
		if idx < 0 {
			break
		}
		line := sw.buf[:idx]
		sw.buf = sw.buf[idx+1:]
		res := gjson.GetBytes(line, sw.path)
		if !res.Exists() {
			continue
		}
		if _, err := io.WriteString(sw.w, res.Raw+"\n"); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
