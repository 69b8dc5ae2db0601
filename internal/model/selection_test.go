package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	today := NewDate(2024, time.March, 14)

	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "single offset", input: "8", want: []int{8}},
		{name: "range", input: "8-15", want: []int{8, 9, 10, 11, 12, 13, 14, 15}},
		{name: "date", input: "2024-03-13", want: []int{1}},
		{name: "mixed", input: "0, 2-3 2024-03-04", want: []int{0, 2, 3, 10}},
		{name: "duplicates kept", input: "1,1", want: []int{1, 1}},
		{name: "empty", input: "  ", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "reversed range", input: "5-2", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "bad range end", input: "1-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := ParseSelection(tt.input, today)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, DayOffsets(dates, today))
		})
	}
}
