// Package server streams a live document to browsers.
//
// A Server renders the page once per request with every element annotated
// by its node ID, then keeps each browser in step over a WebSocket: the
// writes of every update pass are encoded as one sequenced PatchesFrame and
// broadcast, and InputFrames coming back are applied to the document on the
// frame loop.
//
// Clients resume with the sequence number of the last pass they applied.
// Missed passes are replayed from a bounded History; a client that fell
// further behind is told to reload.
//
//	loop := frame.NewLoop(0)
//	root := bind.NewRoot(doc, loop)
//	root.Mount(doc.Root(), body)
//	srv := server.New(server.DefaultConfig(), loop, server.Page{Root: root, Body: body})
//	srv.Run(ctx)
package server
