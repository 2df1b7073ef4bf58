// Package game implements the Open Face Chinese poker rule engine: boards and
// their streets, placement legality, foul detection, royalty and pairwise
// scoring, the fantasy land state machine, and the round controller that
// deals cards, sequences turns and drives agents.
//
// A Table carries players between rounds. Each call to Table.NewRound deals a
// Round, which accepts moves through SubmitMove, SubmitFantasy and
// UndoLastMove until every board is complete and the round scores itself. A
// Runner can drive a Round with one Agent per seat.
package game
