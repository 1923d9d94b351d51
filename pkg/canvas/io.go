package canvas

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// Marshal encodes c as indented JSON.
func Marshal(c *Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a canvas from JSON bytes.
func Unmarshal(data []byte) (*Canvas, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes c as indented JSON to w.
func Write(c *Canvas, w io.Writer) error {
	out := *c
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode canvas")
	}
	return nil
}

// WriteFile writes c to path, creating or truncating it.
func WriteFile(c *Canvas, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a canvas from r. Unknown fields are ignored.
func Read(r io.Reader) (*Canvas, error) {
	var c Canvas
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode canvas")
	}
	return &c, nil
}

// ReadFile reads the canvas stored at path.
func ReadFile(path string) (*Canvas, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}
