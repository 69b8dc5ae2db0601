package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/handiism/bingpot/internal/model"
)

// startDateLayout is the format of Image.StartDate and Image.EndDate ("20240314").
const startDateLayout = "20060102"

// Archive is the response body of HPImageArchive.aspx?format=js.
type Archive struct {
	Images   []Image  `json:"images"`
	Tooltips Tooltips `json:"tooltips"`
}

// Image is one archive record describing a day's featured image.
//
// Only URL is needed to fetch the picture. The remaining fields are kept so
// the record survives a decode/encode round trip and for display.
type Image struct {
	StartDate     string            `json:"startdate"`
	FullStartDate string            `json:"fullstartdate"`
	EndDate       string            `json:"enddate"`
	URL           string            `json:"url"`
	URLBase       string            `json:"urlbase"`
	Copyright     string            `json:"copyright"`
	CopyrightLink string            `json:"copyrightlink"`
	Title         string            `json:"title"`
	Quiz          string            `json:"quiz"`
	WP            bool              `json:"wp"`
	Hash          string            `json:"hsh"`
	Drk           int64             `json:"drk"`
	Top           int64             `json:"top"`
	Bot           int64             `json:"bot"`
	HS            []json.RawMessage `json:"hs"`
}

// Tooltips holds the localized UI strings the archive sends alongside images.
type Tooltips struct {
	Loading  string `json:"loading"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	WallE    string `json:"walle"`
	WallS    string `json:"walls"`
}

// Date parses StartDate, the day the image was featured.
func (img *Image) Date() (model.Date, error) {
	t, err := time.Parse(startDateLayout, img.StartDate)
	if err != nil {
		return model.Date{}, fmt.Errorf("parse startdate %q: %w", img.StartDate, err)
	}
	return model.DateOf(t), nil
}
