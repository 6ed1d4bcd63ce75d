// Package gui is the core of a retained-mode UI toolkit.
//
// # Overview
//
// gui does not ship widgets. It provides the infrastructure every widget is
// built on:
//
//   - property: observable, directionally bindable value cells and lists
//   - shape: drawable primitives (rectangle, circle, text) with z-index
//     sub-layering
//   - canvas: per-element shape ownership, invalidation tracking and the
//     double-buffered frame invalidator
//   - render: the render engine contract and a depth-buffered software
//     implementation with opaque and transparent passes
//
// The root package holds what all of them share: the [Env] handle that pins
// the UI thread, the error taxonomy, colors, geometry and font descriptions.
//
// # Quick Start
//
//	env := gui.NewEnv()
//	if err := env.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Release()
//
//	src := property.New(env, "Label.Text", "A")
//	dst := property.New(env, "Text", "")
//	link, err := property.BindSame(src, dst, property.SourceToDestination)
//
// # Threading
//
// Everything in this module runs on a single UI thread. [Env.Init] locks the
// calling goroutine to its OS thread and records it; every public entry point
// that touches mutable state compares the caller against it and fails with a
// [*ThreadError] when they differ.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Shape areas
// are relative to their element; the canvas converts them to absolute
// coordinates before submission to the engine.
package gui

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
