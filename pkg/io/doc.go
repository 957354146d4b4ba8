// Package io decodes tree descriptions into graphs and encodes graphs back to
// JSON.
//
// # Formats
//
// Four input formats are supported. All of them produce a [dag.DAG] whose
// node and child order follow the order of appearance in the input.
//
// Edge list ([FormatEdges]), one parent/child pair per line. Brackets are
// optional, blank lines and lines starting with # are skipped:
//
//	[1000,2000]
//	[1000,3000]
//	2000, 4000
//
// JSON ([FormatJSON]), the format written by [WriteJSON]:
//
//	{
//	  "nodes": [{"id": "app", "label": "My App"}, {"id": "lib"}],
//	  "edges": [{"from": "app", "to": "lib"}]
//	}
//
// YAML ([FormatYAML]), a nested document:
//
//	name: app
//	children:
//	  - name: lib
//	    label: libfoo
//	  - name: cli
//
// TOML ([FormatTOML]), node and edge tables. Nodes only need to be declared to
// give them a label:
//
//	[[node]]
//	id = "app"
//	label = "My App"
//
//	[[edge]]
//	from = "app"
//	to = "lib"
//
// # Detection
//
// [FormatAuto] picks the format from the file extension in [Import], and from
// the first non-blank line in [Read]: "{" is JSON, "[[" is TOML, a "key:"
// line is YAML and anything else is an edge list.
//
// # Validation
//
// IDs and labels are checked with the validators in package errors: IDs must
// be non-empty and free of control characters, labels must fit on one line.
// Cycles are not rejected here; see [dag.DAG.Validate].
package io
