package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/handiism/bingpot/internal/bing"
	"github.com/handiism/bingpot/internal/config"
	"github.com/handiism/bingpot/internal/http"
	ioutils "github.com/handiism/bingpot/internal/io"
	"github.com/handiism/bingpot/internal/model"
)

// WallpaperFileName is the output of GetWallpaper.
const WallpaperFileName = "wallpaper.jpg"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Stage is how far a single day has progressed through the pipeline.
type Stage int

const (
	StagePending Stage = iota
	StageOffsetComputed
	StageURLResolved
	StageImageFetched
	StageWritten
	StageFailed
)

var stageNames = [...]string{"pending", "offset computed", "url resolved", "image fetched", "written", "failed"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Offset and Stage describe which day the event is about.
	Offset int
	Stage  Stage

	// BytesRead and BytesTotal are set while an image downloads.
	// BytesTotal is -1 when the server did not announce a length.
	BytesRead  int64
	BytesTotal int64
}

// Pipeline fetches archive images and writes them as JPEG files.
//
// Days are processed one at a time in the order given. The first failure
// stops the batch: later days are not attempted and the error, a
// *model.Error stamped with the failing offset, is returned.
type Pipeline struct {
	source bing.ImageSource
	images *ioutils.ImageService

	// Dir is where output files are written. Empty means the working directory.
	Dir string

	// Now supplies the clock; it is read once per batch.
	Now func() time.Time

	onProgress func(ProgressEvent)
}

// NewPipeline creates a Pipeline talking to the endpoints in settings.
func NewPipeline(settings *config.Settings, onProgress func(ProgressEvent)) *Pipeline {
	images := ioutils.NewImageService(settings.JPEGQuality)
	client := bing.NewClient(
		http.NewClient(settings.UserAgent, settings.Timeout()),
		images,
		settings.ArchiveURL,
		settings.ImageBaseURL,
	)
	return NewPipelineWithSource(client, images, onProgress)
}

// NewPipelineWithSource creates a Pipeline over an arbitrary ImageSource.
func NewPipelineWithSource(source bing.ImageSource, images *ioutils.ImageService, onProgress func(ProgressEvent)) *Pipeline {
	return &Pipeline{
		source:     source,
		images:     images,
		Now:        time.Now,
		onProgress: onProgress,
	}
}

// Today returns the local calendar date according to p.Now.
func (p *Pipeline) Today() model.Date {
	return model.DateOf(p.Now())
}

// GetImages downloads the archive image of every date and saves it as
// "<offset>.jpg", where offset counts days back from today. The clock is
// read once for the whole batch.
func (p *Pipeline) GetImages(ctx context.Context, dates []model.Date) ([]string, error) {
	return p.GetImagesAt(ctx, dates, p.Today())
}

// GetImagesAt is GetImages with an explicit today. Callers that already
// turned user input into dates against today must pass that same value so
// a batch started just before midnight keeps its offsets.
func (p *Pipeline) GetImagesAt(ctx context.Context, dates []model.Date, today model.Date) ([]string, error) {
	offsets := model.DayOffsets(dates, today)
	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = fmt.Sprintf("%s (%d day(s) before %s)", d, offsets[i], today)
	}
	return p.run(ctx, offsets, labels)
}

// GetOffsets downloads the image at each offset and saves it as "<offset>.jpg".
//
// It returns the paths written so far. On error that list holds only the
// days that completed before the failing one.
func (p *Pipeline) GetOffsets(ctx context.Context, offsets []int) ([]string, error) {
	labels := make([]string, len(offsets))
	for i, offset := range offsets {
		labels[i] = fmt.Sprintf("offset %d", offset)
	}
	return p.run(ctx, offsets, labels)
}

// GetWallpaper downloads today's image and saves it as wallpaper.jpg.
func (p *Pipeline) GetWallpaper(ctx context.Context) (string, error) {
	path := p.outputPath(WallpaperFileName)
	if err := p.fetchOne(ctx, 0, path, "today's image"); err != nil {
		return "", err
	}
	return path, nil
}

func (p *Pipeline) run(ctx context.Context, offsets []int, labels []string) ([]string, error) {
	written := make([]string, 0, len(offsets))
	for i, offset := range offsets {
		path := p.outputPath(strconv.Itoa(offset) + ".jpg")
		if err := p.fetchOne(ctx, offset, path, labels[i]); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (p *Pipeline) fetchOne(ctx context.Context, offset int, path, label string) error {
	p.progress(ProgressEvent{
		Message: "Fetching " + label,
		Level:   LevelInfo,
		Offset:  offset,
		Stage:   StagePending,
	})
	if err := ctx.Err(); err != nil {
		return p.fail(offset, model.NewError(model.KindTransport, "", err))
	}
	p.progress(ProgressEvent{
		Message: fmt.Sprintf("[%d] querying archive", offset),
		Level:   LevelVerbose,
		Offset:  offset,
		Stage:   StageOffsetComputed,
	})

	record, err := p.source.Record(ctx, offset)
	if err != nil {
		return p.fail(offset, err)
	}
	imageURL, err := p.source.ImageURL(record, offset)
	if err != nil {
		return p.fail(offset, err)
	}
	p.progress(ProgressEvent{
		Message: fmt.Sprintf("[%d] %s: %s", offset, record.Title, imageURL),
		Level:   LevelVerbose,
		Offset:  offset,
		Stage:   StageURLResolved,
	})

	img, err := p.source.FetchImage(ctx, imageURL, func(read, total int64) {
		p.progress(ProgressEvent{
			Level:      LevelVerbose,
			Offset:     offset,
			Stage:      StageURLResolved,
			BytesRead:  read,
			BytesTotal: total,
		})
	})
	if err != nil {
		return p.fail(offset, err)
	}
	bounds := img.Bounds()
	p.progress(ProgressEvent{
		Message: fmt.Sprintf("[%d] decoded %dx%d image", offset, bounds.Dx(), bounds.Dy()),
		Level:   LevelVerbose,
		Offset:  offset,
		Stage:   StageImageFetched,
	})

	p.progress(ProgressEvent{
		Message: fmt.Sprintf("[%d] encoding JPEG at quality %d", offset, p.images.Quality()),
		Level:   LevelVerbose,
		Offset:  offset,
		Stage:   StageImageFetched,
	})
	if err := p.images.SaveJPEG(ctx, img, path); err != nil {
		return p.fail(offset, err)
	}
	p.progress(ProgressEvent{
		Message: fmt.Sprintf("Saved %s (%s)", filepath.Base(path), record.Title),
		Level:   LevelSuccess,
		Offset:  offset,
		Stage:   StageWritten,
	})
	return nil
}

func (p *Pipeline) fail(offset int, err error) error {
	err = model.AtOffset(err, offset)
	p.progress(ProgressEvent{
		Message: err.Error(),
		Level:   LevelError,
		Offset:  offset,
		Stage:   StageFailed,
	})
	return err
}

func (p *Pipeline) outputPath(name string) string {
	if p.Dir == "" {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func (p *Pipeline) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
