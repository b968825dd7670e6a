// Package memory implements the word addressed memory of the bcpu system.
//
// Memory is an ordered sequence of fixed size regions of 32-bit cells.
// Address a lives in region a / REGION_SIZE at offset a % REGION_SIZE.
// Regions are only ever appended, and never move once allocated, so
// pointers to cells stay valid for the life of the Space.
package memory
