// Package render turns detection results into images.
//
// HeatMap draws the vote accumulator (θ across, ρ down) on a black to red
// to yellow to white ramp. Annotate strokes detected segments over the
// source image, optionally labelling each line with its ρ, θ and votes.
// DrawHeatMap and Preview show the same heat map in a terminal.
//
// Edge maps are rendered with edges.ToGray.
package render
