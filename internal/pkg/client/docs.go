// Package client implements a line client for the quiz server.
//
// The client is a plain pump: lines typed locally go to the server unchanged and
// everything the server writes, prompts included, is copied to the local output.
// The server owns the whole conversation, so the client keeps no state.
package client
