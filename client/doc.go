// Package client speaks the time-series command surface over a single
// connection.
//
// The Client maps each TS.* command to a typed method, encoding its
// arguments through the builders in the ts package and decoding its reply
// through the ts decode functions. The transport underneath is the Conn
// interface; the built-in implementation is a plain TCP connection that
// serializes round-trips with a mutex. There is no pooling, pipelining or
// pub/sub.
//
// # Connecting
//
//	c, err := client.Dial("localhost:6379",
//	    client.WithAuth("secret"),
//	    client.WithReadTimeout(2*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
// # Commands
//
//	err = c.Create(ctx, "sensor:1:temp", ts.Options{}.
//	    Retention(3600000).
//	    DuplicatePolicy(ts.PolicyLast).
//	    Label("sensor", "1"))
//
//	_, err = c.Add(ctx, "sensor:1:temp", 1500, 21.5)
//
//	samples, err := c.Range(ctx, "sensor:1:temp", ts.RangeQuery{}.
//	    From(0).To(2000).
//	    Aggregation(ts.Avg(500)))
//
// Client methods fix timestamps to int64 milliseconds and values to
// float64. For other scalar instantiations, send the command through Do
// and decode the raw reply with the generic ts parse functions.
//
// # Errors
//
// Server error replies surface as resp.ServerError from every method
// except Get, which resolves them to "no sample" alongside genuinely empty
// replies. Decode failures wrap errs.ErrMalformedReply; transport failures
// pass through unwrapped.
package client
