// Package replay records command exchanges and plays them back without a
// server.
//
// A Recorder wraps a live connection and captures every command together
// with the reply bytes that came back. The recording serializes to a
// compact journal, compressed with any codec from the compress package,
// and a Player replays it later as a drop-in connection, verifying that
// the replayed commands match the recorded ones exactly.
//
// # Recording
//
//	conn, err := client.DialConn(context.Background(), "localhost:6379")
//	if err != nil {
//		log.Fatal(err)
//	}
//	rec := replay.NewRecorder(conn)
//	c := client.New(rec)
//	// ... run commands through c ...
//	data, err := rec.Journal().Encode()
//
// # Playback
//
//	journal, err := replay.Decode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := client.New(replay.NewPlayer(journal))
//	// ... the same commands now succeed offline ...
//
// A command that deviates from the recording fails with
// errs.ErrReplayMismatch; running past the end of the recording fails
// with errs.ErrReplayExhausted. Journals are fixtures: record against a
// real server once, commit the bytes, and run integration-shaped tests
// offline from then on.
package replay
