package renderer

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// markdown is the parser shared by HTML and the tests. Tables are GitHub
// flavored.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML converts rendered markdown into an HTML fragment.
func HTML(md string) (string, error) {
	var b bytes.Buffer
	if err := markdown.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
