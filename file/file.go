// Package file declares the codec contract shared by the net file formats.
package file

import (
	"context"
	"io"

	"github.com/jt05610/magnet"
)

type Service interface {
	Load(ctx context.Context, r io.Reader) (*magnet.Net, error)
	Save(ctx context.Context, w io.Writer, n *magnet.Net) error
	Format() Format
}

type Format string

const (
	PNML Format = "pnml"
	YAML Format = "yaml"
)
