// Package download provides the orchestration that turns archive dates
// into JPEG files on disk.
//
// # Pipeline
//
// For every requested day the Pipeline:
//
//  1. Computes the day offset from today (the clock is read once per batch)
//  2. Queries the archive for that offset and resolves the image URL
//  3. Downloads and decodes the image
//  4. Re-encodes it as JPEG and writes "<offset>.jpg", replacing any old file
//
// Days run strictly in order and the first failure ends the batch.
//
// # Basic Usage
//
//	pipeline := download.NewPipeline(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	today := model.DateOf(time.Now())
//	written, err := pipeline.GetImages(ctx, []model.Date{today.AddDays(-8)})
//	if err != nil {
//	    log.Fatal(err) // *model.Error carrying the failing offset
//	}
//
// GetWallpaper is the single-image variant: today's image as wallpaper.jpg.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Offset  int
//	    Stage   Stage         // Pending ... Written, or Failed
//	    ...
//	}
//
// Byte-level download updates carry an empty Message and BytesRead/BytesTotal.
package download
