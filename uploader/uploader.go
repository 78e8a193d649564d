/*Package uploader stages generated VCF files into Google Cloud Storage.
 */
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
)

var bucketURL = regexp.MustCompile(`^gs://.*$`)

// Client serves as the base for the uploader.
type Client struct {
	Bucket    string
	GCSClient *storage.Client
}

// New returns a client staging files into the given bucket, accepted either
// as a bare bucket name or a gs:// URL.
func New(ctx context.Context, bucket string) (*Client, error) {
	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}
	if bucketURL.MatchString(bucket) {
		bucket = strings.TrimPrefix(bucket, "gs://")
	}
	bucket = strings.TrimSuffix(bucket, "/")
	return &Client{Bucket: bucket, GCSClient: gcs}, nil
}

// Push uploads the VCF at vcfPath into the staging bucket and returns the
// gs:// URL of the staged object.
func (c *Client) Push(ctx context.Context, vcfPath string) (string, error) {
	in, err := os.Open(vcfPath)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", vcfPath)
	}
	defer in.Close()

	object := path.Base(vcfPath)
	w := c.GCSClient.Bucket(c.Bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, in); err != nil {
		w.Close()
		return "", errors.Wrapf(err, "staging %s into gs://%s", vcfPath, c.Bucket)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "finalizing gs://%s/%s", c.Bucket, object)
	}
	return fmt.Sprintf("gs://%s/%s", c.Bucket, object), nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	return c.GCSClient.Close()
}
