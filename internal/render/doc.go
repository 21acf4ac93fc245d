// Package render turns a scene into drawables and keeps them in a retained
// graph that backends draw from.
//
// A frame is built back to front:
//
//   - depth ruler, with casing bands for the selected well
//   - well paths, the selected one emphasized
//   - component intervals, shaded by a [Shader]
//   - wellhead trees
//   - subsea structures
//   - tooltips
//
// There is no depth buffer. Emphasis on the selected well stands in for
// depth sorting.
//
// # Backends
//
// [WriteSVG] emits an SVG document with gradients, a glow filter and
// data-id attributes. [Canvas] rasterizes the same drawables to braille
// cells for the terminal.
//
// # Retained graph
//
// [Graph.Apply] diffs each new frame against the previous one by drawable
// ID, so unchanged drawables keep their handles between frames.
package render
