// Package keypoints cleans motion-capture CSV logs of hand keypoints and
// derives the fingertip aperture metric.
//
// A run moves one table through a fixed sequence of stages:
//
//	Load -> Discover -> FilterValid -> [MarkMissing] -> [RemoveOutliers] -> RemoveBlacklist
//
// Each stage consumes the previous stage's table; there are no backward
// transitions. Pipeline wires the stages together from a Config, and the
// stage functions are exported so callers and tests can drive them one at
// a time.
package keypoints
