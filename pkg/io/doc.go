// Package io reads observation datasets from files and writes aggregated
// summaries back out.
//
// # Input Formats
//
// Datasets can be supplied as JSON, YAML, TOML or CSV. JSON and YAML accept
// either a bare list of observations or an object with an "observations"
// list:
//
//	[
//	  {"category": 1, "value": 10, "user": "alice"},
//	  {"category": 2, "value": 30, "user": "bob"}
//	]
//
// TOML files use an array of tables:
//
//	[[observations]]
//	category = 1
//	value = 10
//	user = "alice"
//
// CSV files need a header row naming the category, value and user columns.
// Column order is free and extra columns are ignored:
//
//	user,category,value
//	alice,1,10
//	bob,2,30
//
// # Import
//
// Use [Import] to read a file by path. The format is chosen from the file
// extension (.json, .yaml/.yml, .toml, .csv). The Read* functions read from
// any io.Reader:
//
//	obs, err := io.Import("observations.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import does not validate the observations beyond decoding. Use
// [dataset.Validate] before rendering.
//
// # Export
//
// [WriteJSON] and [WriteCSV] encode aggregated [dataset.CategorySummary]
// values. [Export] picks the encoder from the file extension.
//
// All errors carry codes from [errors]: FILE_NOT_FOUND for missing files and
// INVALID_FORMAT for undecodable content or unknown extensions.
//
// [dataset.Validate]: github.com/matzehuels/linechart/pkg/dataset.Validate
// [dataset.CategorySummary]: github.com/matzehuels/linechart/pkg/dataset.CategorySummary
// [errors]: github.com/matzehuels/linechart/pkg/errors
package io
