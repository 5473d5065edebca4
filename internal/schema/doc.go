// Package schema parses schema definition dumps (.df files).
//
// A dump is a flat list of statements, one per line:
//
//	ADD SEQUENCE "next_order"
//	ADD TABLE "customer"
//	  DESCRIPTION "Customer master"
//	ADD FIELD "cust_num" OF "customer" AS integer
//	  COLUMN-LABEL "Cust#"
//	  HELP "Customer number"
//	ADD INDEX "cust_num" ON "customer"
//
// The parser is a single-pass line state machine. It recognises a small fixed
// set of statements and silently drops everything else, so it never fails on
// malformed input; only opening, reading or decoding the source can fail.
//
// Table-level descriptions attach only between ADD TABLE and the first field
// or index of that table, and may span several lines until the closing quote.
// COLUMN-LABEL and HELP attach to the most recently declared field.
package schema
