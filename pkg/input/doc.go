// Package input is the boundary between the validator and the transport that
// carries request data.
//
// The validator never reads ambient state. It asks a Lookup for the value of a
// field in one Source: post, get, cookie, server, env or route. Values are
// strings, string lists, numbers or absent.
//
// Two implementations are provided. Values is an in-memory map, handy in
// tests and for callers that already decoded their payload:
//
//	lookup := input.Values{
//	    input.Post: {"email": "user@example.com"},
//	}
//
// Request adapts an *http.Request. It parses url-encoded and multipart
// bodies, exposes query parameters, cookies, request metadata in the
// server-variable style (REQUEST_METHOD, HTTP_USER_AGENT, ...), process
// environment variables and chi route parameters, and spools uploaded files
// into temporary files:
//
//	req, err := input.FromRequest(r)
//	if err != nil {
//	    return err
//	}
//	defer req.Cleanup()
package input
