// Package display renders verification runs for people: the end-of-run
// summary, the status overlay drawn over the game, and progress and warning
// messages for the CLI.
//
// # Summary
//
//	display.WriteSummary(os.Stdout, orchestrator.Report())
//
// prints one line per verified level followed by "N passed, M failed".
//
// # Overlay
//
//	view := display.RenderOverlay(orchestrator.Snapshot())
//
// returns a lipgloss box with the orchestrator state, typing progress and
// the running tally. It is read-only over the snapshot.
//
// # Progress and warnings
//
//	progress := display.NewProgressIndicator(os.Stdout, len(levels))
//	progress.Start()
//	for _, l := range levels {
//	    progress.Step(l.Name, "3 actions")
//	}
//	progress.Complete()
//
//	display.WarnMissingSolutions(names).Display(os.Stderr)
//
// All functions accept io.Writer interfaces for testability.
package display
