package bing

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"strconv"

	"github.com/handiism/bingpot/internal/bing/dto"
	"github.com/handiism/bingpot/internal/http"
	ioutils "github.com/handiism/bingpot/internal/io"
	"github.com/handiism/bingpot/internal/model"
)

const (
	// DefaultArchiveURL is the Bing homepage image archive endpoint.
	DefaultArchiveURL = "https://www.bing.com/HPImageArchive.aspx"

	// DefaultImageBaseURL is prepended to a record's relative url.
	DefaultImageBaseURL = "https://bing.com"
)

// ImageSource resolves archive offsets to images.
// It is implemented by *Client and can be replaced in tests.
type ImageSource interface {
	Record(ctx context.Context, offset int) (*dto.Image, error)
	ImageURL(record *dto.Image, offset int) (string, error)
	FetchImage(ctx context.Context, imageURL string, onProgress func(read, total int64)) (image.Image, error)
}

// Ensure Client implements ImageSource at compile time.
var _ ImageSource = (*Client)(nil)

// Client queries the Bing image archive and downloads the images it points to.
//
// Example usage:
//
//	client := bing.NewClient(http.NewClient("bingpot", 0), ioutils.NewImageService(90), "", "")
//
//	imageURL, err := client.ResolveImageURL(ctx, 8)
//	// "https://bing.com/th?id=OHR...."
//
//	img, err := client.FetchImage(ctx, imageURL, nil)
type Client struct {
	http         *http.Client
	images       *ioutils.ImageService
	archiveURL   string
	imageBaseURL string
}

// NewClient builds a Client. Empty archiveURL or imageBaseURL select the
// public Bing endpoints.
func NewClient(httpClient *http.Client, images *ioutils.ImageService, archiveURL, imageBaseURL string) *Client {
	if archiveURL == "" {
		archiveURL = DefaultArchiveURL
	}
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	return &Client{
		http:         httpClient,
		images:       images,
		archiveURL:   archiveURL,
		imageBaseURL: imageBaseURL,
	}
}

// QueryURL returns the archive URL asking for exactly one record at offset.
func (c *Client) QueryURL(offset int) (string, error) {
	u, err := url.Parse(c.archiveURL)
	if err != nil {
		return "", fmt.Errorf("parse archive url %q: %w", c.archiveURL, err)
	}
	values := u.Query()
	values.Set("format", "js")
	values.Set("idx", strconv.Itoa(offset))
	values.Set("n", "1")
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Record fetches the archive record for the day offset days before today.
//
// Negative offsets name future days, which the archive has no defined
// answer for; they are rejected as model.KindNotFound without a request.
// An archive response with no images is also KindNotFound. All returned
// errors are *model.Error stamped with offset.
func (c *Client) Record(ctx context.Context, offset int) (*dto.Image, error) {
	if offset < 0 {
		return nil, model.AtOffset(
			model.NewError(model.KindNotFound, "", fmt.Errorf("no archive record for a future day")),
			offset,
		)
	}

	queryURL, err := c.QueryURL(offset)
	if err != nil {
		return nil, model.AtOffset(model.NewError(model.KindTransport, c.archiveURL, err), offset)
	}

	var archive dto.Archive
	if err := c.http.GetJSON(ctx, queryURL, &archive); err != nil {
		return nil, model.AtOffset(err, offset)
	}

	if len(archive.Images) == 0 {
		return nil, model.AtOffset(
			model.NewError(model.KindNotFound, queryURL, fmt.Errorf("archive returned no images")),
			offset,
		)
	}
	return &archive.Images[0], nil
}

// ResolveImageURL returns the absolute URL of the image at offset.
//
// The record's url is appended to the image base URL verbatim, so
// "/th?id=OHR.Example_1920x1080.jpg" becomes
// "https://bing.com/th?id=OHR.Example_1920x1080.jpg".
func (c *Client) ResolveImageURL(ctx context.Context, offset int) (string, error) {
	record, err := c.Record(ctx, offset)
	if err != nil {
		return "", err
	}
	return c.ImageURL(record, offset)
}

// ImageURL joins the image base URL with the record's relative url.
func (c *Client) ImageURL(record *dto.Image, offset int) (string, error) {
	if record.URL == "" {
		return "", model.AtOffset(
			model.NewError(model.KindDecode, "", fmt.Errorf("archive record has no url")),
			offset,
		)
	}
	return c.imageBaseURL + record.URL, nil
}

// FetchImage downloads imageURL and decodes it, sniffing the format from
// the bytes. onProgress may be nil.
func (c *Client) FetchImage(ctx context.Context, imageURL string, onProgress func(read, total int64)) (image.Image, error) {
	data, err := c.http.DownloadBytes(ctx, imageURL, onProgress)
	if err != nil {
		return nil, err
	}
	img, err := c.images.Decode(data)
	if err != nil {
		return nil, withURL(err, imageURL)
	}
	return img, nil
}

func withURL(err error, u string) error {
	perr, ok := err.(*model.Error)
	if !ok || perr.URL != "" {
		return err
	}
	stamped := *perr
	stamped.URL = u
	return &stamped
}
