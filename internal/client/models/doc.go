// Package models defines the client-side data shapes: catalog countries,
// registered users and the fixed set of catalog regions.
//
// The JSON encodings of Country and User are the exact layouts kept in the
// local registry, so values written by older builds keep decoding.
package models
