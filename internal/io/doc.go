// Package ioutils provides file and image utilities for bingpot.
//
// # Image Processing
//
// The ImageService turns downloaded bytes into JPEG files:
//
//	svc := ioutils.NewImageService(90)
//
//	// Decode whatever format the server sent (sniffed from content)
//	img, err := svc.Decode(data)
//
//	// Re-encode and save, overwriting an existing file
//	err = svc.SaveJPEG(ctx, img, "8.jpg")
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/file.jpg", data)
package ioutils
