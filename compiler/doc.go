/*
Package compiler turns source units into images for the virtual machine.

Process of compilation

Program Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	generate ->
Basic Blocks and Functions (ir) ->
	finalize ->
Image Text

Blocks are written to the image when they end with a control transfer,
functions after their last block. The image starts with the exports and
global objects and ends with the exports object reference.
*/
package compiler
