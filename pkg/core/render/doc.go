// Package render holds helpers shared by every renderer, such as converting
// SVG output to PNG or PDF with an external converter.
package render
