// Package model defines the core types shared across bingpot.
//
// # Dates and offsets
//
// The Bing archive is addressed by a day offset counted back from today.
// Date is a plain calendar date and DayOffsets turns a batch of dates into
// offsets against an explicit "today":
//
//	today := model.DateOf(time.Now())
//	offsets := model.DayOffsets([]model.Date{today.AddDays(-8)}, today) // [8]
//
// # Errors
//
// Error is the single failure type of the fetch pipeline. Its Kind is one
// of KindTransport, KindProtocol, KindDecode, KindNotFound or
// KindFilesystem, and it optionally carries the offset, HTTP status, URL and
// underlying cause.
package model
