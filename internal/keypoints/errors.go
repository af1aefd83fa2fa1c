package keypoints

import "errors"

var (
	// ErrInput marks input files that are missing, unreadable or not valid CSV.
	ErrInput = errors.New("input error")

	// ErrData marks tables that parse but do not carry enough valid keypoints
	// for the requested computation.
	ErrData = errors.New("data error")
)
