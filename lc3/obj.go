package lc3

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Obj is an LC-3 object image built in memory: an origin word, one word
// per payload byte (high byte zero), and a terminating zero word, all
// big-endian. The backing .obj file is created lazily by ToFile and
// owned exclusively by this Obj; Close removes it. Callers should
// `defer obj.Close()` right after construction so the artifact is
// released on every exit path.
type Obj struct {
	orig Value
	buf  []byte
	path string
}

// NewObj builds the serialized image for data loaded at orig.
// data may be empty; the image is then just origin + terminator.
func NewObj(orig Value, data []byte) *Obj {
	var buf bytes.Buffer
	buf.Write(orig.Bytes())
	for _, b := range data {
		buf.WriteByte(0x00)
		buf.WriteByte(b)
	}
	buf.WriteByte(0x00)
	buf.WriteByte(0x00)
	return &Obj{orig: orig, buf: buf.Bytes()}
}

// Origin returns the load address of the image.
func (o *Obj) Origin() Value { return o.orig }

// Bytes returns the serialized image: 2*(len(data)+2) bytes.
func (o *Obj) Bytes() []byte { return o.buf }

// ToFile writes the image to a uniquely named .obj file and returns its
// path. Repeated calls return the same path without rewriting.
func (o *Obj) ToFile() (string, error) {
	if o.path != "" {
		return o.path, nil
	}
	name := filepath.Join(os.TempDir(), fmt.Sprintf("lc3test-%s.obj", uuid.NewString()))
	if err := os.WriteFile(name, o.buf, 0o644); err != nil {
		return "", fmt.Errorf("write object image: %w", err)
	}
	o.path = name
	return name, nil
}

// Close deletes the backing file, if one was materialized.
func (o *Obj) Close() error {
	if o.path == "" {
		return nil
	}
	err := os.Remove(o.path)
	o.path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
