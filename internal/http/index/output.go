package index

// Output is the response for GET /. A []byte body bypasses Huma's
// serializers, so the greeting is sent verbatim.
type Output struct {
	ContentType string `header:"Content-Type"`
	Body        []byte `contentType:"text/plain"`
}
