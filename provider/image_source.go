package provider

import "io"

// ImageSource is the tagged variant for the two ways a caller can hand us an
// image. A nil ImageSource means none was supplied. When a request carries
// both a file and a URL, the file wins; that precedence is resolved where the
// request is parsed, so the service only ever sees one source.
type ImageSource interface {
	isImageSource()
}

// UploadedFile is raw image content to be pushed to the blob store before the
// record referencing it is written.
type UploadedFile struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// ExternalURL is a caller-supplied reference stored verbatim, no upload.
type ExternalURL string

func (UploadedFile) isImageSource() {}
func (ExternalURL) isImageSource()  {}
