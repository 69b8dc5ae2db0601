// Package http provides the HTTP client used to talk to the Bing archive
// and image hosts.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Optional request timeouts
//   - Mapping failures onto model.Error kinds (transport, protocol, decode)
//   - In-memory downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient("bingpot", 0)
//
//	// Decode a JSON document
//	var archive dto.Archive
//	err := client.GetJSON(ctx, archiveURL, &archive)
//
//	// Download bytes with a progress callback
//	data, err := client.DownloadBytes(ctx, imageURL, func(read, total int64) {
//	    fmt.Printf("%d bytes\n", read)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   &buf,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
