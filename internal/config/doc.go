// Package config provides configuration management for bingpot.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Queries https://www.bing.com/HPImageArchive.aspx
//	// Fetches images from https://bing.com
//	// No HTTP timeout, JPEG quality 90
//
// # Loading from File
//
//	settings, err := config.Load("~/.config/bingpot/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// A file only needs the keys it overrides:
//
//	user_agent = "my-wallpaper-bot/1.0"
//	timeout_seconds = 30
//
// # Saving Settings
//
//	settings.JPEGQuality = 95
//	err := settings.Save("/path/to/config.toml")
package config
