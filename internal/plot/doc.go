// Package plot renders aperture box plots and keypoint scatter plots.
//
// Static images (PNG, SVG, PDF) are drawn with gonum/plot; interactive HTML
// pages are built with go-echarts. Both renderings of a chart come from the
// same BoxSpec or ScatterSpec so they show the same data.
package plot
