package cli

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/boxtree/pkg/errors"
	bio "github.com/matzehuels/boxtree/pkg/io"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// openInput resolves the tree argument to a reader. No argument or "-" reads
// c.in. When opts.InputFormat is auto, the file extension picks the format
// before content sniffing gets a chance.
func (c *CLI) openInput(args []string, opts *pipeline.Options) (io.Reader, error) {
	path := stdinName
	if len(args) > 0 {
		path = args[0]
	}
	opts.Source = path

	if path == stdinName {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read stdin")
		}
		return bytes.NewReader(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.New(errs.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	if opts.InputFormat == "" || opts.InputFormat == string(bio.FormatAuto) {
		if f := bio.DetectFormat(path); f != bio.FormatAuto {
			opts.InputFormat = string(f)
		}
	}
	return bytes.NewReader(data), nil
}
